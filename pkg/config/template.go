package config

// Template is the commented starter configuration written by `orgtree
// init`.
const Template = `# orgtree configuration
#
# Every key is optional; omitted keys keep their defaults.

# Headline TODO keywords.
todo-keywords:
  - TODO
done-keywords:
  - DONE

# Tag alignment on output: 0 emits a single space, a negative value
# right-aligns tags at that column from the end, a positive value aligns
# from the start.
tags-column: -77

# Headings at this outline depth or deeper are inline tasks.
inlinetask-min-level: 15

# Tag marking archived subtrees.
archive-tag: ARCHIVE

# Title of the dedicated footnote section.
footnote-section: Footnotes

# TAB width used when computing indentation.
tab-width: 8

# Default parse depth for the CLI: headline, greater-element, element or
# object.
granularity: object
`
