package blogcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	exportPostsMessageType  = "portfolio.blog.export_posts"
	checkContentMessageType = "portfolio.blog.check_content"
)

// ExportPostsCommand writes every post of the selected locales as JSON under
// OutputDir. An empty Locales list exports every configured locale.
type ExportPostsCommand struct {
	// OutputDir receives one sub-directory per locale.
	OutputDir string `json:"output_dir"`
	// Locales restricts the export to the listed locale identifiers.
	Locales []string `json:"locales,omitempty"`
	// Indent pretty-prints the JSON documents.
	Indent bool `json:"indent,omitempty"`
}

// Type implements command.Message.
func (ExportPostsCommand) Type() string { return exportPostsMessageType }

// Validate ensures the output directory is set and locale entries are not blank.
func (cmd ExportPostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("portfolio.blog.export_posts.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.Locales, validation.Each(validation.By(notBlank("portfolio.blog.export_posts.locale_blank", "locale cannot be blank")))),
	)
}

// CheckContentCommand resolves every post of the selected locales and fails
// on the first invalid file. An empty Locales list checks every configured
// locale.
type CheckContentCommand struct {
	Locales []string `json:"locales,omitempty"`
}

// Type implements command.Message.
func (CheckContentCommand) Type() string { return checkContentMessageType }

// Validate rejects blank locale entries.
func (cmd CheckContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Locales, validation.Each(validation.By(notBlank("portfolio.blog.check_content.locale_blank", "locale cannot be blank")))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
