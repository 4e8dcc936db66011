package model

// Tag is one public name tag entry for a token contract.
type Tag struct {
	ContractAddress string `json:"Contract Address"`
	PublicNameTag   string `json:"Public Name Tag"`
	ProjectName     string `json:"Project Name"`
	UIWebsiteLink   string `json:"UI/Website Link"`
	PublicNote      string `json:"Public Note"`
}

// TagColumns lists the tag fields in output order.
var TagColumns = []string{
	"Contract Address",
	"Public Name Tag",
	"Project Name",
	"UI/Website Link",
	"Public Note",
}

// Row returns the tag values in TagColumns order.
func (t Tag) Row() []string {
	return []string{
		t.ContractAddress,
		t.PublicNameTag,
		t.ProjectName,
		t.UIWebsiteLink,
		t.PublicNote,
	}
}
