package mcpserver

// PostFormatContract describes the canonical Markdown post format that
// content authors and LLM consumers should follow.
const PostFormatContract = `# Fuwari Post Format Contract

Every Markdown post in the content directory MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title         # REQUIRED - shown in lists and search
description: One-line summary       # OPTIONAL - searched alongside the title
published: 2024-01-15               # REQUIRED - ISO-8601 date or datetime
updated: 2024-02-01                 # OPTIONAL
draft: false                        # OPTIONAL - drafts are hidden in production
tags:                               # OPTIONAL - YAML list, used for filtering
  - tag-one
  - tag-two
category: Web                       # OPTIONAL - omit for "uncategorized"
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "`---`" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **` + "`title`" + ` and ` + "`published`" + ` are required.** The published date is the
   primary sort key; a post with a missing or malformed date is rejected.
3. **Slugs come from file paths.** The slug is the path relative to the
   collection directory without the ` + "`.md`" + ` extension, and must be unique.
4. **Tags** are short labels; filtering combines them with AND semantics.
5. **Category** is a single value. Leave it out (or empty) for the
   localized "uncategorized" bucket.
6. **Encoding** is UTF-8 with a trailing newline.
`
