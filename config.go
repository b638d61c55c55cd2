package blogimport

import "github.com/goliatone/go-blogimport/internal/runtimeconfig"

var (
	ErrPostsDirRequired       = runtimeconfig.ErrPostsDirRequired
	ErrPostsDirUnsafe         = runtimeconfig.ErrPostsDirUnsafe
	ErrLayoutRequired         = runtimeconfig.ErrLayoutRequired
	ErrSlugStyleInvalid       = runtimeconfig.ErrSlugStyleInvalid
	ErrSlugLengthInvalid      = runtimeconfig.ErrSlugLengthInvalid
	ErrEntryPolicyInvalid     = runtimeconfig.ErrEntryPolicyInvalid
	ErrWritePolicyInvalid     = runtimeconfig.ErrWritePolicyInvalid
	ErrSchemesRequired        = runtimeconfig.ErrSchemesRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	SlugStyleSafe       = runtimeconfig.SlugStyleSafe
	SlugStyleVerbatim   = runtimeconfig.SlugStyleVerbatim
	EntryPolicySkip     = runtimeconfig.EntryPolicySkip
	EntryPolicyAbort    = runtimeconfig.EntryPolicyAbort
	WritePolicyContinue = runtimeconfig.WritePolicyContinue
	WritePolicyAbort    = runtimeconfig.WritePolicyAbort
)

type (
	Config        = runtimeconfig.Config
	ImportConfig  = runtimeconfig.ImportConfig
	ConvertConfig = runtimeconfig.ConvertConfig
	SchemeConfig  = runtimeconfig.SchemeConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
