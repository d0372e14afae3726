package mcpserver

// CaptureContract describes how captured text becomes a Markdown file,
// for LLM consumers using the save_note and append_note tools.
const CaptureContract = `# Ansuz Capture Contract

Ansuz turns text into Markdown files inside a configured vault. Saving
never rewrites the text: content is stored byte-for-byte. Only the
filename and target folder are derived.

## Filename resolution

1. An explicit ` + "`" + `filename` + "`" + ` argument wins (extension is added for you).
2. Otherwise the first line of the content is used.
3. If neither survives sanitization, a timestamp name is generated:
   ` + "`" + `note-YYYYMMDDHHmmss` + "`" + `.

Sanitization replaces characters that are illegal in filenames
(` + "`" + `/ \ : * ? " < > |` + "`" + `) with spaces, collapses whitespace runs, trims,
and caps the name at 80 characters. Do not pre-sanitize; pass names as-is.

## Folder resolution

1. An explicit ` + "`" + `folder` + "`" + ` argument wins. Pass ` + "`" + `/` + "`" + ` to target the vault
   root itself.
2. Otherwise the configured default subfolder is used.
3. Otherwise the note lands in the vault root.

Missing folders are created on save. Folder paths use forward slashes
(e.g. ` + "`" + `Work/Meetings` + "`" + `).

## Collisions

When ` + "`" + `name.md` + "`" + ` already exists the save does not overwrite it; the next
free numbered name is used: ` + "`" + `name-1.md` + "`" + `, ` + "`" + `name-2.md` + "`" + `, and so on.
The tool result reports the path that was actually written.

## Appending

` + "`" + `append_note` + "`" + ` adds text to the end of an existing note. Two optional
toggles shape the appended block:

- ` + "`" + `add_separator` + "`" + `: inserts a ` + "`" + `---` + "`" + ` horizontal rule before the text.
- ` + "`" + `add_timestamp` + "`" + `: inserts an italicized timestamp line before the text.

A single newline is inserted first only when the file does not already
end with one; existing content is never reformatted.

## Rules

1. **Empty content is rejected.** Whitespace-only saves and appends fail
   without touching the vault.
2. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
3. **Encoding** is UTF-8.
4. Hidden files and folders (dot-prefixed) are internal; never target them.
`
