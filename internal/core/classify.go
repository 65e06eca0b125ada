package core

import "strings"

// Category is the semantic safety bucket for a pattern. It exists so a
// downstream reviewer can apply category-specific caution independent of
// raw approval counts.
type Category string

const (
	CategoryReadonly       Category = "readonly"
	CategoryRunCode        Category = "run_code"
	CategoryGitSafe        Category = "git_safe"
	CategoryGitLocalMutate Category = "git_local_mutate"
	CategoryGitRemote      Category = "git_remote_mutate"
	CategoryExternalMutate Category = "external_mutate"
	CategoryClaudeInternal Category = "claude_internal"
	CategoryFileWrite      Category = "file_write"
	CategoryBrowserAction  Category = "browser_action"
	CategoryInfra          Category = "infra"
	CategoryUnknown        Category = "unknown"
)

// Classification tables. Adding a CLI is a data change, not a code change.
var (
	readonlyTools = map[string]struct{}{
		"Grep": {}, "Glob": {}, "Read": {}, "WebSearch": {}, "WebFetch": {},
	}
	fileWriteTools = map[string]struct{}{
		"Write": {}, "Edit": {}, "NotebookEdit": {},
	}
	internalTools = map[string]struct{}{
		"TaskUpdate": {}, "TaskCreate": {}, "TaskList": {}, "TaskGet": {},
		"ExitPlanMode": {}, "EnterPlanMode": {}, "AskUserQuestion": {}, "Skill": {},
	}

	// MCP tool suffixes that indicate read-only operations. The two tabs_*
	// entries are exact-name exceptions, not prefixes in spirit, but the
	// prefix check covers them.
	readonlyMCPPrefixes = []string{"read_", "get_", "list_", "view_", "tabs_context", "tabs_create"}
	mutateMCPKeywords   = []string{"write", "create", "delete", "merge", "close", "update", "edit", "remove"}

	readonlyShellCommands = map[string]struct{}{
		"ls": {}, "find": {}, "wc": {}, "which": {}, "pwd": {}, "cat": {},
		"head": {}, "tail": {}, "file": {}, "stat": {}, "du": {}, "df": {},
		"echo": {}, "date": {}, "uname": {}, "env": {}, "printenv": {},
		"id": {}, "whoami": {}, "hostname": {},
	}
	runCodeCommands = map[string]struct{}{
		"python3": {}, "python": {}, "node": {}, "npm": {}, "npx": {},
		"yarn": {}, "pnpm": {}, "uv": {}, "cargo": {}, "pytest": {},
		"jest": {}, "vitest": {}, "make": {}, "go": {}, "rustc": {},
		"tsc": {}, "bun": {}, "deno": {},
	}
	infraCommands = map[string]struct{}{
		"gcloud": {}, "terraform": {}, "tofu": {}, "aws": {}, "kubectl": {},
		"helm": {}, "docker": {}, "docker-compose": {}, "pulumi": {},
		"az": {}, "flyctl": {},
	}

	gitSafeSubcommands = map[string]struct{}{
		"log": {}, "status": {}, "diff": {}, "show": {}, "branch": {},
		"tag": {}, "remote": {}, "describe": {}, "rev-parse": {},
		"ls-files": {}, "ls-tree": {}, "shortlog": {}, "blame": {},
		"reflog": {}, "stash list": {},
	}
	gitLocalMutateSubcommands = map[string]struct{}{
		"add": {}, "commit": {}, "checkout": {}, "stash": {}, "switch": {},
		"merge": {}, "cherry-pick": {}, "revert": {}, "tag -a": {}, "branch -d": {},
	}
	gitRemoteMutateSubcommands = map[string]struct{}{
		"push": {}, "rebase": {}, "reset": {}, "fetch": {}, "pull": {}, "clean": {},
	}
)

// ClassifyTool maps a pattern to its safety category. Total: every input
// yields a category, defaulting to CategoryUnknown.
func ClassifyTool(pattern string) Category {
	inner, shell := InnerCommand(pattern)
	if !shell {
		return classifyToolName(pattern)
	}

	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return CategoryUnknown
	}
	cmd := fields[0]
	sub := ""
	if len(fields) >= 2 {
		sub = fields[1]
	}

	if _, ok := readonlyShellCommands[cmd]; ok {
		return CategoryReadonly
	}
	if cmd == "git" {
		return classifyGit(sub)
	}
	if _, ok := runCodeCommands[cmd]; ok {
		return CategoryRunCode
	}
	if _, ok := infraCommands[cmd]; ok {
		return CategoryInfra
	}
	// GitHub CLI mutates remote state (PRs, issues, releases).
	if cmd == "gh" {
		return CategoryExternalMutate
	}
	return CategoryUnknown
}

func classifyToolName(name string) Category {
	if _, ok := readonlyTools[name]; ok {
		return CategoryReadonly
	}
	if _, ok := fileWriteTools[name]; ok {
		return CategoryFileWrite
	}
	if _, ok := internalTools[name]; ok {
		return CategoryClaudeInternal
	}
	if strings.HasPrefix(name, "mcp__") {
		return classifyMCP(name)
	}
	return CategoryUnknown
}

func classifyMCP(name string) Category {
	if strings.HasSuffix(name, "__computer") || strings.HasSuffix(name, "__form_input") {
		return CategoryBrowserAction
	}
	suffix := name
	if idx := strings.LastIndex(name, "__"); idx >= 0 {
		suffix = name[idx+2:]
	}
	for _, prefix := range readonlyMCPPrefixes {
		if strings.HasPrefix(suffix, prefix) {
			return CategoryReadonly
		}
	}
	for _, kw := range mutateMCPKeywords {
		if strings.Contains(suffix, kw) {
			return CategoryExternalMutate
		}
	}
	// Unrecognized MCP tools default to readonly.
	return CategoryReadonly
}

func classifyGit(sub string) Category {
	if _, ok := gitSafeSubcommands[sub]; ok {
		return CategoryGitSafe
	}
	if _, ok := gitLocalMutateSubcommands[sub]; ok {
		return CategoryGitLocalMutate
	}
	if _, ok := gitRemoteMutateSubcommands[sub]; ok {
		return CategoryGitRemote
	}
	// Unknown git subcommands default to safe.
	return CategoryGitSafe
}
