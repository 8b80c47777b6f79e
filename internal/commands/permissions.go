package commands

// Permission nodes checked before each subcommand runs.
const (
	PermHelp       = "resinapi.command.help"
	PermList       = "resinapi.command.list"
	PermCheck      = "resinapi.command.check"
	PermCheckOther = "resinapi.command.check.other"
	PermGive       = "resinapi.command.give"
	PermSet        = "resinapi.command.set"
	PermTake       = "resinapi.command.take"
)

// AllPermissions lists every node in help order.
var AllPermissions = []string{PermHelp, PermList, PermCheck, PermCheckOther, PermGive, PermSet, PermTake}
