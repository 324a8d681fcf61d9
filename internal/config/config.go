package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Version is injected via -ldflags.
var Version = "dev"

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Fortune/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Fortune"
	AppID             = "com.github.tartampluch.go-fortune"
	CommandName       = "go-fortune"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvFileName       = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagYear         = "year"
	FlagMonth        = "month"
	FlagLunar        = "lunar"
	FlagHTML         = "html"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescYear     = "Selected year (clamped to 1940..current year)"
	FlagDescMonth    = "Selected month (clamped to 1..12)"
	FlagDescLunar    = "Use the lunar calendar (fixed 30-day months)"
	FlagDescHTML     = "Print HTML markup instead of styled text"
	CmdShortRoot     = "Fortune bracelet prediction client"
	CmdShortDays     = "List the selectable days of a month"
	CmdShortFormat   = "Format prediction text read from a file or stdin"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar Rules
// -----------------------------------------------------------------------------

const (
	// MinBirthYear is the oldest year offered by the date picker.
	MinBirthYear = 1940

	// LunarMonthDays is the fixed day count used for every lunar month.
	// The client does not look up real lunar month lengths.
	LunarMonthDays = 30

	DefaultMonth     = 1
	DefaultBirthHour = 12
	HoursPerDay      = 24
	DefaultLeapYear  = 2000 // Leap year fallback for vCard dates like --02-29
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	FormWindowWidth    = 520
	ResultWindowWidth  = 640
	ResultWindowHeight = 720
	SettingsWinWidth   = 520
	ShareModalWidth    = 420
	QRDisplaySize      = 160

	// Preference Keys
	PrefLanguage    = "language"
	PrefAPIBaseURL  = "api_base_url"
	PrefPreviewPort = "preview_port"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "zh"}

// Option pairs a value sent to the backend with the translation key of its label.
type Option struct {
	Value string
	TKey  string
}

// Select options of the form. Labels are translated; values are not.
var (
	GenderOptions = []Option{
		{"男", "opt_gender_male"},
		{"女", "opt_gender_female"},
	}
	PurposeOptions = []Option{
		{"财运", "opt_purpose_wealth"},
		{"事业", "opt_purpose_career"},
		{"健康", "opt_purpose_health"},
		{"婚姻", "opt_purpose_marriage"},
		{"学业", "opt_purpose_study"},
		{"人际", "opt_purpose_relations"},
		{"破小人", "opt_purpose_protection"},
	}
	ReligionOptions = []Option{
		{"无", "opt_religion_none"},
		{"佛教", "opt_religion_buddhism"},
		{"道教", "opt_religion_taoism"},
		{"基督教", "opt_religion_christianity"},
	}
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinForm       = "win_form_title"
	TKeyWinResult     = "win_result_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyMenuFile      = "menu_file"
	TKeyMenuImport    = "menu_import_contact"
	TKeyMenuOpenShare = "menu_open_shared"
	TKeyMenuSettings  = "menu_settings"

	// Form
	TKeyLblName       = "lbl_name"
	TKeyLblGender     = "lbl_gender"
	TKeyLblBirthDate  = "lbl_birth_date"
	TKeyLblBirthHour  = "lbl_birth_hour"
	TKeyLblDateType   = "lbl_date_type"
	TKeyLblPurpose    = "lbl_purpose"
	TKeyLblReligion   = "lbl_religion"
	TKeyLblBirthPlace = "lbl_birth_place"
	TKeyDateSolar     = "date_solar"
	TKeyDateLunar     = "date_lunar"
	TKeyPlaceholder   = "select_placeholder"
	TKeyFmtYear       = "fmt_year"  // Requires Value
	TKeyFmtMonth      = "fmt_month" // Requires Value
	TKeyFmtDay        = "fmt_day"   // Requires Value
	TKeyFmtHour       = "fmt_hour"  // Requires Value
	TKeyBtnSubmit     = "btn_submit"
	TKeyErrDayReq     = "err_day_required"
	TKeyErrNameReq    = "err_name_required"

	// Result
	TKeySecBasic      = "sec_basic"
	TKeySecYearly     = "sec_yearly_fortune"
	TKeySecPurpose    = "sec_purpose_advice"
	TKeySecBracelet   = "sec_bracelet"
	TKeySecUsage      = "sec_usage_tips"
	TKeyLblZodiac     = "lbl_zodiac"
	TKeyLblZodiacSign = "lbl_zodiac_sign"
	TKeyLblEightChars = "lbl_eight_characters"
	TKeyLblHourName   = "lbl_hour_name"
	TKeyLblElements   = "lbl_five_elements"
	TKeyLblNumbers    = "lbl_lucky_numbers"
	TKeyLblColors     = "lbl_lucky_colors"
	TKeyLblMissing    = "lbl_missing_elements"
	TKeyLblSymbols    = "lbl_religious_symbols"
	TKeyNoData        = "no_data"
	TKeyUnknown       = "unknown"
	TKeyBtnShare      = "btn_share"
	TKeyBtnPDF        = "btn_download_pdf"
	TKeyBtnXLSX       = "btn_export_xlsx"
	TKeyBtnICS        = "btn_export_ics"
	TKeyBtnPreview    = "btn_open_preview"

	// Modals
	TKeyLoadPredict = "loading_predict"
	TKeyLoadShare   = "loading_share"
	TKeyLoadPDF     = "loading_pdf"
	TKeyShareTitle  = "share_title"
	TKeyBtnCopy     = "btn_copy"
	TKeyBtnCopied   = "btn_copied"
	TKeyBtnClose    = "btn_close"
	TKeyOpenTitle   = "open_shared_title"
	TKeyOpenHint    = "open_shared_hint"
	TKeyBtnOpen     = "btn_open"
	TKeyBtnCancel   = "btn_cancel"
	TKeyBtnSave     = "btn_save"
	TKeyImportTitle = "import_title"

	// Notifications
	TKeyErrSubmit     = "err_submit"
	TKeyErrShare      = "err_share"
	TKeyErrShareNoID  = "err_share_no_id"
	TKeyErrExport     = "err_export"
	TKeyErrPDFFont    = "err_pdf_font"
	TKeyErrImport     = "err_import"
	TKeyErrImportNone = "err_import_none"
	TKeyErrImportYear = "err_import_year"
	TKeyErrOpenShared = "err_open_shared"
	TKeyMsgExported   = "msg_exported"

	// Settings
	TKeyLblLanguage = "lbl_language"
	TKeyLblAPIURL   = "lbl_api_url"
	TKeyHelpAPIURL  = "help_api_url"
	TKeyLblPort     = "lbl_preview_port"
	TKeyHelpPort    = "help_preview_port"
	TKeyLblFooter   = "lbl_footer"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrURL       = "err_api_url"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18081"
	DefaultLanguage   = "zh"
	DefaultAPIBaseURL = "http://127.0.0.1:8080"
	DefaultPurpose    = "财运"
	DefaultReligion   = "无"
	MinPort           = 1
	MaxPort           = 65535
)

// -----------------------------------------------------------------------------
// Content Formatting
// -----------------------------------------------------------------------------

const (
	// PlaceholderNoData is the paragraph produced for empty content.
	PlaceholderNoData = "no data"
	// PlaceholderUnknown is used when eight characters or hour pillars are missing.
	PlaceholderUnknown = "unknown"

	BulletMarker   = "• "
	LineSeparator  = "\n"
	BlockSeparator = "\n\n"
	ListSeparator  = ", "
)

// -----------------------------------------------------------------------------
// Share & QR Code
// -----------------------------------------------------------------------------

const (
	QRSize       = 128
	QRColorDark  = "#6c5ce7"
	QRColorLight = "#ffffff"
	ShareIDParam = "id"
)

// -----------------------------------------------------------------------------
// Export
// -----------------------------------------------------------------------------

const (
	PDFFileName      = "手串饰品预测结果.pdf"
	XLSXFileName     = "手串饰品预测结果.xlsx"
	ICSFileName      = "birthday.ics"
	PDFMarginMM      = 10.0
	PDFPageFormat    = "A4"
	PDFOrientation   = "P"
	PDFUnit          = "mm"
	PDFFontFamily    = "cjk"
	PDFCoreFont      = "Helvetica"
	PDFTitleSize     = 16.0
	PDFHeadingSize   = 13.0
	PDFBodySize      = 10.5
	PDFLineHeight    = 6.0
	PDFListIndent    = 5.0
	XLSXSheetName    = "Prediction"
	XLSXHeaderKey    = "Field"
	XLSXHeaderValue  = "Value"
	ReportTitle      = "手串饰品预测结果"
	ExtPDF           = ".pdf"
	ExtXLSX          = ".xlsx"
	ExtICS           = ".ics"
	ExtVCF           = ".vcf"
	ExtVCard         = ".vcard"
	DateFormatReport = "2006-01-02 15:04"
)

// PDFFontCandidates are system TrueType fonts with CJK glyphs, tried in order
// when FORTUNE_PDF_FONT is unset. fpdf cannot read .ttc collections.
var PDFFontCandidates = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/google-droid-sans-fonts/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/arphic-gbsn00lp/gbsn00lp.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\simkai.ttf`,
	`C:\Windows\Fonts\simfang.ttf`,
}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion  = "2.0"
	ICalProdid   = "-//Go Fortune//Export//EN"
	ICalCalName  = "Birthday"
	ICalScale    = "GREGORIAN"
	ICalMethod   = "PUBLISH"
	ICalDomain   = "gofortune"
	ICalRRule    = "FREQ=YEARLY"
	ICalSummary  = "Birthday: %s"
	ICalLucky    = "Lucky colors: %s\nLucky numbers: %s"
	UIDSalt      = "go-fortune-v1-" // Salt for deterministic UID generation
	UIDHashLen   = 16
	FormatUID    = "%s@%s"
	FormatHashIn = "%s|%s|%s"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropDescription = "DESCRIPTION"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and backend dates
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 60 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 8 * 1024 * 1024 // 8MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// Backend API & Local Routes
// -----------------------------------------------------------------------------

const (
	APIPathPredict = "/api/predict/fortune"
	APIPathShare   = "/api/share"

	RouteRoot     = "/"
	RouteQRCode   = "/qr.png"
	RouteCalendar = "/birthday.ics"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderRequestID       = "X-Request-ID"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeJSON            = "application/json"
	MimeHTML            = "text/html; charset=utf-8"
	MimePNG             = "image/png"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	AllowedMethods      = "GET, HEAD"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrEncodeRequest   = "failed to encode request body"
	ErrDecodeResponse  = "failed to decode response body"
	ErrNetwork         = "network error during request"
	ErrBackendStatus   = "backend returned an error"
	ErrEmptyShareID    = "share id is empty"
	ErrEmptyPredID     = "prediction id is empty"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrQREncode        = "failed to encode QR code"
	ErrQREmpty         = "QR code text is empty"
	ErrColorParse      = "invalid hex color"
	ErrPDFRender       = "failed to render PDF"
	ErrPDFFontRequired = "no UTF-8 font available for non-Latin text"
	ErrXLSXRender      = "failed to render spreadsheet"
	ErrExportFormat    = "unsupported export format"
	ErrNoPrediction    = "no prediction to export"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrSettingsParse   = "failed to read settings from environment"
	ErrReadInput       = "failed to read input"
	ErrTemplateExecute = "failed to render preview page"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "No prediction yet, please submit the form first."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	TitleStartupError = "Startup Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Preview cache updated"
	MsgPreviewPartial = "Preview resource skipped"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgEnvFileLoaded  = "Loaded settings file"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgContactsRead   = "Contacts imported"
	MsgRequestStart   = "Sending backend request"
	MsgRequestDone    = "Backend request completed"
	MsgRequestFailed  = "Backend request failed"
	MsgPredictDone    = "Prediction received"
	MsgShareDone      = "Share link created"
	MsgDaysRebuilt    = "Day options regenerated"
	MsgFormMounted    = "Form bindings registered"
	MsgFormUnmounted  = "Form bindings released"
	MsgExportDone     = "Export written"
	MsgExportFailed   = "Export failed"
	MsgSavingSettings = "Saving preferences"
	MsgNoUTF8Font     = "No UTF-8 font configured, falling back to core font"
	MsgFontResolved   = "Using font for PDF export"
	MsgYearOutOfRange = "Contact birth year is outside the selectable range"
	MsgBasicFallback  = "Backend returned the basic prediction only"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyRequestID = "request_id"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyID        = "id"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyCalendar  = "calendar"
	LogKeyDays      = "days"
	LogKeyCount     = "count"
	LogKeyFormat    = "format"
	LogKeyValue     = "value"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUIForm   = "ui_form"
	CompUIResult = "ui_result"
	CompUISet    = "ui_settings"
	CompClient   = "client"
	CompContacts = "contacts"
	CompExport   = "export"
	CompServer   = "server"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
