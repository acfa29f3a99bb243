package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-PetCare/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go PetCare"
	CLIName           = "petcarectl"
	AppID             = "com.github.tartampluch.go-petcare"
	KeyringService    = "com.github.tartampluch.go-petcare"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.svg"
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
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagStore        = "store"
	FlagLang         = "lang"
	FlagMonth        = "month"
	FlagDate         = "date"
	FlagTime         = "time"
	FlagProvider     = "provider"
	FlagReason       = "reason"
	FlagUrgency      = "urgency"
	FlagClearUrgency = "clear-urgency"
	FlagServe        = "serve"
	FlagPort         = "port"
	FlagFile         = "file"
	FlagURL          = "url"
	FlagUser         = "user"
	FlagCount        = "count"
	FlagSeed         = "seed"
	FlagName         = "name"
	FlagVaccines     = "vaccines"
	FlagConsults     = "consults"
	FlagTreatments   = "treatments"
	FlagImage        = "image"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging"
	FlagDescStore   = "Directory holding the local data store"
	FlagDescLang    = "Language used for reminder texts (en, es)"

	FlagDescMonth        = "Month to show, as YYYY-MM"
	FlagDescDate         = "Appointment date, as YYYY-MM-DD"
	FlagDescTime         = "Time of day, e.g. 8:00 AM"
	FlagDescProvider     = "Veterinarian"
	FlagDescReason       = "Reason for the visit"
	FlagDescUrgency      = "Urgency override: high or low"
	FlagDescClearUrgency = "Remove the urgency override"
	FlagDescServe        = "Serve the feed over HTTP instead of printing it"
	FlagDescPort         = "Port of the feed server"
	FlagDescFile         = "Path to a .vcf file"
	FlagDescURL          = "CardDAV or WebDAV address book URL"
	FlagDescUser         = "Username for --url; the password is read from the keyring"
	FlagDescCount        = "Number of appointments to create"
	FlagDescSeed         = "Random seed, 0 picks one"
	FlagDescName         = "Pet name"
	FlagDescVaccines     = "Vaccination notes"
	FlagDescConsults     = "Consultation notes"
	FlagDescTreatments   = "Treatment notes"
	FlagDescImage        = "Picture URI"

	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// EnvPrefix scopes viper environment lookups (PETCARE_STORE, ...).
	EnvPrefix      = "PETCARE"
	ConfigFileName = ".petcare"
	DefaultStore   = "~/.go-petcare"

	MonthFlagLayout = "2006-01"
)

// -----------------------------------------------------------------------------
// CLI Commands & Output
// -----------------------------------------------------------------------------

const (
	CmdShortRoot      = "Pet care appointments and reminders on the command line."
	CmdShortBook      = "Book an appointment."
	CmdShortList      = "List appointments, optionally for one month."
	CmdShortEdit      = "Edit an appointment and replace its reminder."
	CmdShortDelete    = "Delete an appointment and cancel its reminder."
	CmdShortReconcile = "Schedule reminders for pending future appointments."
	CmdShortRun       = "Schedule reminders and deliver them until interrupted."
	CmdShortCalendar  = "Show a month calendar with appointment days marked."
	CmdShortFeed      = "Print or serve the appointments as an iCalendar feed."
	CmdShortVets      = "List veterinarians from a vCard file or URL."
	CmdShortPet       = "Manage pets."
	CmdShortPetAdd    = "Add a pet."
	CmdShortPetList   = "List pets."
	CmdShortSeed      = "Book random demo appointments."
	CmdShortVersion   = "Print the version."

	MsgBooked         = "Booked %s\n"
	MsgUpdated        = "Updated %s\n"
	MsgDeleted        = "Deleted %s\n"
	MsgReconciled     = "%d reminder(s) scheduled\n"
	MsgSeededCount    = "Seeded %d appointment(s)\n"
	MsgPetAddedID     = "Added pet %s\n"
	MsgNoAppointments = "No appointments"
	MsgNoPets         = "No pets"
	MsgNoVets         = "No veterinarians"
	MsgServing        = "Serving feed on http://%s:%s%s\n"
	MsgWaiting        = "Waiting for reminders, press Ctrl+C to stop"

	// FormatConsoleNotif expects the delivery time, title and body.
	FormatConsoleNotif = "[%s] %s %s\n"
	ConsoleTimeLayout  = "15:04:05"
	CalendarMark       = "*"

	ErrVetsSource = "pass exactly one of --file or --url"
)

// -----------------------------------------------------------------------------
// Storage Keys
// -----------------------------------------------------------------------------

const (
	KeyAppointments  = "reminders:appointments"
	KeyScheduledMap  = "reminders:scheduled"
	KeyNotifications = "notifications:pending"
	KeyPets          = "pets:list"

	// DiskCacheSizeMax bounds the in-memory read cache of the disk store.
	DiskCacheSizeMax = 1024 * 1024
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefSourceMode = "directory_source_mode"
	PrefLocalPath  = "directory_local_path"
	PrefCardDAVURL = "directory_carddav_url"
	PrefUsername   = "directory_username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "es"}

// -----------------------------------------------------------------------------
// UI Appointments Window Constants
// -----------------------------------------------------------------------------

const (
	AppointmentsWinWidth  = 520
	AppointmentsWinHeight = 640
	BookingWinWidth       = 420

	// Calendar cells
	CalendarColumns = 7
	BlankCell       = ""

	DateFormatDisplay = "2006-01-02"
	MonthTitleLayout  = "January 2006"
	ListPlaceholder   = "Appointment"

	LogMsgOpenWin     = "Opening appointments window"
	LogMsgOpenBooking = "Opening booking window"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinSettings      = "win_settings_title"
	TKeyWinAppointments  = "win_appointments_title"
	TKeyWinBooking       = "win_booking_title"
	TKeyMenuAppointments = "menu_appointments"
	TKeyMenuBook         = "menu_book"
	TKeyMenuRefresh      = "menu_refresh"
	TKeyMenuSettings     = "menu_settings"
	TKeyTrayNext         = "tray_next"      // Requires Reason, Date, Time
	TKeyTrayNextNone     = "tray_next_none" // No upcoming appointment
	TKeyNotifTitle       = "notif_title"
	TKeyNotifBody        = "notif_body" // Requires Reason, Provider, Time
	TKeyNotifBooked      = "notif_booked"
	TKeyNotifSaved       = "notif_saved"
	TKeyLblDate          = "lbl_date"
	TKeyLblTime          = "lbl_time"
	TKeyLblProvider      = "lbl_provider"
	TKeyLblReason        = "lbl_reason"
	TKeyLblUrgency       = "lbl_urgency"
	TKeyUrgencyHigh      = "urgency_high"
	TKeyUrgencyLow       = "urgency_low"
	TKeyUrgencyAuto      = "urgency_auto"
	TKeyBtnPrev          = "btn_prev_month"
	TKeyBtnNext          = "btn_next_month"
	TKeyBtnBook          = "btn_book"
	TKeyBtnEdit          = "btn_edit"
	TKeyBtnDelete        = "btn_delete"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyBtnBrowse        = "btn_browse"
	TKeyLblEmptyMonth    = "lbl_empty_month"
	TKeyConfirmDelete    = "confirm_delete"
	TKeyLblLanguage      = "lbl_language"
	TKeyHelpLanguage     = "help_language"
	TKeyLblPort          = "lbl_server_port"
	TKeyHelpPort         = "help_port"
	TKeyLblGeneral       = "lbl_general"
	TKeyLblDirectory     = "lbl_directory"
	TKeyModeCardDAV      = "mode_carddav"
	TKeyModeLocal        = "mode_local"
	TKeyLblURL           = "lbl_url"
	TKeyHelpURL          = "help_carddav_url"
	TKeyLblUser          = "lbl_user"
	TKeyLblPass          = "lbl_pass"
	TKeyLblFooter        = "lbl_footer"
	TKeyErrValidation    = "err_validation"
	TKeyErrSave          = "err_save"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
	DefaultProvider   = "Dr. Rodrigo Pollo"
	DefaultTimeOfDay  = "8:00 AM"
	DefaultSeedCount  = 10
	IDSuffixLength    = 6
	FormatAppointment = "%d-%s"

	// UrgencyWindow is the time-to-event under which an unflagged appointment is high urgency.
	UrgencyWindow = 48 * time.Hour

	// ColorHigh and ColorLow are the display colors of the two urgency levels.
	ColorHigh = "#ff3b30"
	ColorLow  = "#00c780"

	// MissedGrace bounds how late a reminder missed while the app was closed is still delivered.
	MissedGrace = 12 * time.Hour

	// ReconcileFlightKey groups concurrent reconciliation requests.
	ReconcileFlightKey = "reconcile"

	MinutesPerDay = 24 * 60
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go PetCare//Reminders//EN"
	ICalCalName   = "Pet appointments"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "go-petcare"
	ICalTriggerAt = "PT0S"

	ICalStatusConfirmed = "CONFIRMED"
	ICalStatusCancelled = "CANCELLED"
	ICalPriorityHigh    = 1
	ICalPriorityLow     = 9

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropPriority    = "PRIORITY"
	PropStatus      = "STATUS"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardFN    = "FN"
	VCardORG   = "ORG"
	VCardTEL   = "TEL"
	VCardEMAIL = "EMAIL"
	VCardUID   = "UID"

	DefaultICalRefresh  = 1 * time.Hour
	AppointmentDuration = 30 * time.Minute
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateLayout is the canonical appointment date form.
	DateLayout = "2006-01-02"
	// TimeLayout is the display form of a time of day.
	TimeLayout = "3:04 PM"

	MeridiemAM = "AM"
	MeridiemPM = "PM"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// Directory
	FormatVetUID = "%x"
	UIDHashLen   = 8

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 32 * 1024 * 1024 // 32MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteFeed           = "/appointments.ics"
	RouteHealth         = "/health"
	AddrSeparator       = ":"
	HealthBody          = "ok"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrFetchRequest     = "failed to build directory request"
	ErrFetchNetwork     = "network error during directory fetch"
	ErrFetchStatus      = "directory server returned an unexpected status"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrTimeParse        = "unable to parse time of day"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrStoreRead        = "failed to read from store"
	ErrStoreWrite       = "failed to write to store"
	ErrStoreRemove      = "failed to remove from store"
	ErrStorePath        = "could not resolve store path"
	ErrEncode           = "failed to encode stored value"
	ErrNotFound         = "appointment not found"
	ErrValidation       = "validation failed"
	ErrUnknownHandle    = "unknown notification handle"
	ErrPastTrigger      = "notification trigger is not in the future"
	ErrScheduleFailed   = "failed to schedule reminder"
	ErrCancelFailed     = "failed to cancel reminder"
	ErrMapWrite         = "failed to persist scheduled reminders"
	ErrQueueWrite       = "failed to persist pending notifications"
	ErrMonthFlag        = "month must use the YYYY-MM form"
	ErrPetValidation    = "pet validation failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackNotifTitle = "Appointment reminder 🐾"
	FallbackNotifBody  = "%s with %s - %s"
	FallbackTrayNext   = "Next: %s on %s %s"
	FallbackTrayNone   = "No upcoming appointments"
	FallbackTrayLabel  = "Go PetCare"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy         = "Port %s is busy or unavailable."
	MsgAppStarting      = "Starting application"
	MsgAppStop          = "Application stopped gracefully"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgCacheUpdated     = "Calendar cache updated"
	MsgLocaleSkip       = "Skipping non-locale file"
	MsgLocaleBadName    = "Skipping malformed locale filename"
	MsgLocaleLoaded     = "Locale loaded successfully"
	MsgTransMissing     = "Missing translation key"
	MsgPassFail         = "Password retrieval failed (might be empty)"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgMalformedData    = "Ignoring malformed stored data"
	MsgSkippedCard      = "Skipping malformed vCard"
	MsgSkippedTime      = "Skipping appointment with unparsable date or time"
	MsgReconcileSkip    = "Reminders already reconciled this session"
	MsgReconcileEmpty   = "No appointments to reconcile"
	MsgReconcileDone    = "Reminder reconciliation finished"
	MsgReminderSet      = "Reminder scheduled"
	MsgReminderCancel   = "Reminder cancelled"
	MsgAppointmentAdded = "Appointment booked"
	MsgAppointmentEdit  = "Appointment updated"
	MsgAppointmentDrop  = "Appointment deleted"
	MsgNotifFired       = "Delivering notification"
	MsgNotifMissed      = "Dropping notification missed beyond grace period"
	MsgNotifRestored    = "Pending notifications restored"
	MsgDirectoryLoaded  = "Veterinarian directory loaded"
	MsgRefreshReq       = "Refresh requested"
	MsgPetAdded         = "Pet added"
	MsgSeeded           = "Demo appointments seeded"
	MsgRunWaiting       = "Delivering reminders until interrupted"
	MsgRequestServed    = "Request served"
	MsgStoreOpened      = "Store opened"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent   = "component"
	LogKeyError       = "error"
	LogKeyURL         = "url"
	LogKeyStatus      = "status_code"
	LogKeyFile        = "file"
	LogKeyLang        = "lang"
	LogKeyKey         = "key"
	LogKeyPort        = "port"
	LogKeyMode        = "mode"
	LogKeyUser        = "user"
	LogKeySizeBytes   = "size_bytes"
	LogKeyETag        = "etag"
	LogKeyCount       = "count"
	LogKeyName        = "name"
	LogKeyDuration    = "duration_ms"
	LogKeyAppointment = "appointment_id"
	LogKeyHandle      = "handle"
	LogKeyFireAt      = "fire_at"
	LogKeyScheduled   = "scheduled"
	LogKeyStore       = "store"
	LogKeyMethod      = "method"
	LogKeyPath        = "path"

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
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompUIAppt    = "ui_appointments"
	CompEngine    = "engine"
	CompStore     = "store"
	CompNotify    = "notify"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompDirectory = "directory"
	CompMain      = "main"
	CompCLI       = "cli"
	CompI18n      = "i18n"
	CompPets      = "pets"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
