package archive

type ResourceType string

const (
	TypeArticle  ResourceType = "article"
	TypeResource ResourceType = "resource"
)

// Record is a saved link as returned by the archive API.
type Record struct {
	ID           int          `json:"id"`
	URL          string       `json:"url"`
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Source       string       `json:"source,omitempty"`
	CreatedAt    string       `json:"created_at"`
	ResourceType ResourceType `json:"resource_type"`
	Read         bool         `json:"read,omitempty"`
}

// Badge is the short label shown next to a record.
func (r Record) Badge() string {
	if r.ResourceType == TypeResource {
		return "TOOL"
	}
	return "READ"
}
