package drive

// Folder is a transient view of a store folder. Never persisted;
// reconstructed from cache or live query.
type Folder struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}

// Photo is a transient view of a store image file.
type Photo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	CreatedTime    string `json:"createdTime,omitempty"`
	WebViewLink    string `json:"webViewLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`
}

// PhotoSet is the output of resolving a gallery path.
type PhotoSet struct {
	Photos     []Photo
	TitlePhoto *Photo
	FolderID   string

	// Redirected is true when auto-descent into a single child folder
	// occurred.
	Redirected bool
}

// ResolveState distinguishes "nothing here" from "not initialized yet"
// from a successful resolution.
type ResolveState int

const (
	ResolveFound ResolveState = iota
	ResolveNotFound
	ResolveNotReady
)

func (s ResolveState) String() string {
	switch s {
	case ResolveFound:
		return "found"
	case ResolveNotFound:
		return "not-found"
	case ResolveNotReady:
		return "not-ready"
	}
	return "unknown"
}
