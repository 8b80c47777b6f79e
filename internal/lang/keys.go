package lang

// Message keys known to every catalog.
const (
	ErrorPlayerNotOnline    = "error.player.not.online"
	ErrorPlayerNotFound     = "error.player.not.found"
	ErrorInvalidResinType   = "error.invalid.resin.type"
	ErrorInvalidNumber      = "error.invalid.number"
	ErrorInsufficientAmount = "error.insufficient.amount"
	ErrorProviderFailure    = "error.provider.failure"
	ErrorNoPermission       = "error.no.permission"

	UsageMain   = "usage.main"
	UsageCheck  = "usage.check"
	UsageChange = "usage.change"

	HelpHeader = "help.header"
	HelpHelp   = "help.help"
	HelpList   = "help.list"
	HelpCheck  = "help.check"
	HelpGive   = "help.give"
	HelpSet    = "help.set"
	HelpTake   = "help.take"

	ListHeader = "list.header"
	ListEntry  = "list.entry"

	SuccessResinCheck      = "success.resin.check"
	SuccessResinCheckOther = "success.resin.check.other"

	SuccessConsoleResinGive = "success.console.resin.give"
	SuccessPlayerResinGive  = "success.player.resin.give"
	SuccessConsoleResinSet  = "success.console.resin.set"
	SuccessPlayerResinSet   = "success.player.resin.set"
	SuccessConsoleResinTake = "success.console.resin.take"
	SuccessPlayerResinTake  = "success.player.resin.take"

	ConsoleSaved      = "console.saved"
	ConsoleSaveFailed = "console.save.failed"
	ConsoleJoined     = "console.joined"
	ConsoleQuit       = "console.quit"
	ConsoleOnline     = "console.online"
	ConsoleUnknown    = "console.unknown"
)
