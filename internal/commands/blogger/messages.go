package bloggercmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importFeedMessageType = "blogimport.blogger.import_feed"

// ImportFeedCommand imports every post of a Blogger export into SiteRoot.
type ImportFeedCommand struct {
	// SiteRoot is the static site directory that receives the posts folder.
	SiteRoot string `json:"site_root"`
	// ImportFile is the path of the Blogger Atom export.
	ImportFile string `json:"import_file"`
	// DryRun renders posts and reports paths without writing.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportFeedCommand) Type() string { return importFeedMessageType }

// Validate ensures both paths are present before handlers execute.
func (cmd ImportFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SiteRoot, validation.Required, validation.By(notBlank("site_root"))),
		validation.Field(&cmd.ImportFile, validation.Required, validation.By(notBlank("import_file"))),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("blogimport.blogger.import_feed."+field+"_required", field+" is required")
		}
		return nil
	}
}
