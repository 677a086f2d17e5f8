package gdocs

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"google.golang.org/api/drive/v3"
	"md2gdocs/debug"
	"md2gdocs/markdown"
)

type Comment struct {
	ID          string `json:"id" yaml:"id"`
	AuthorEmail string `json:"author_email,omitempty" yaml:"author_email,omitempty"`
	AuthorName  string `json:"author_name" yaml:"author_name"`
	Text        string `json:"text" yaml:"text"`
	Created     string `json:"created" yaml:"created"`
	Resolved    bool   `json:"resolved" yaml:"resolved"`
	Replies     int    `json:"replies" yaml:"replies"`
	QuotedText  string `json:"quoted_text,omitempty" yaml:"quoted_text,omitempty"`
	// Section is the heading the comment anchor falls under, when the anchor
	// carries a position.
	Section *markdown.Heading `json:"section,omitempty" yaml:"section,omitempty"`
}

type ListOptions struct {
	// Outline is the heading outline recorded when the document was
	// published.
	Outline         []markdown.Heading
	IncludeResolved bool
}

const commentFields = "comments(anchor,author(displayName,emailAddress),content,createdTime,deleted,id,resolved," +
	"quotedFileContent(value),replies(deleted,id)),nextPageToken"

// ListComments returns the document's comments, oldest first.
func ListComments(ctx context.Context, c *Client, docID string, opts ListOptions) ([]Comment, error) {
	outline := sortedOutline(opts.Outline)
	comments := []Comment{}

	call := c.Drive.Comments.List(docID).
		IncludeDeleted(false).
		PageSize(100).
		Fields(commentFields)

	err := call.Pages(ctx, func(list *drive.CommentList) error {
		for _, dc := range list.Comments {
			if dc == nil || dc.Deleted {
				continue
			}
			if dc.Resolved && !opts.IncludeResolved {
				continue
			}
			comments = append(comments, toComment(dc, outline))
		}
		return nil
	})
	if err != nil {
		return nil, markdown.RemoteError(err, markdown.CodeRemoteFailure, "listing comments failed")
	}

	sort.SliceStable(comments, func(i, j int) bool { return comments[i].Created < comments[j].Created })

	debug.Log("Fetched %d comment(s) for %s", len(comments), docID)
	return comments, nil
}

func toComment(dc *drive.Comment, outline []markdown.Heading) Comment {
	cm := Comment{
		ID:       dc.Id,
		Text:     dc.Content,
		Created:  dc.CreatedTime,
		Resolved: dc.Resolved,
	}
	if dc.Author != nil {
		cm.AuthorEmail = dc.Author.EmailAddress
		cm.AuthorName = dc.Author.DisplayName
	}
	if cm.AuthorName == "" {
		cm.AuthorName = ExtractDisplayName(cm.AuthorEmail)
	}
	if dc.QuotedFileContent != nil {
		cm.QuotedText = dc.QuotedFileContent.Value
	}
	for _, r := range dc.Replies {
		if r != nil && !r.Deleted {
			cm.Replies++
		}
	}
	if start, _, ok := parseAnchorStartEnd(dc.Anchor); ok {
		cm.Section = sectionAt(start, outline)
	}
	return cm
}

// ResolveComments marks the given comments resolved. A failure on one
// comment does not stop the others; the ids that were resolved are returned.
func ResolveComments(ctx context.Context, c *Client, docID string, commentIDs []string) []string {
	if len(commentIDs) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(commentIDs))
	for _, id := range commentIDs {
		_, err := c.Drive.Comments.Update(docID, id, &drive.Comment{Resolved: true}).
			Fields("id,resolved").Context(ctx).Do()
		if err != nil {
			debug.Logger().Warn("unable to resolve comment", "document", docID, "comment", id, "error", err)
			continue
		}
		resolved = append(resolved, id)
	}

	debug.Log("Resolved %d/%d comment(s)", len(resolved), len(commentIDs))
	return resolved
}

// ExtractDisplayName guesses a name from an address:
// jane.smith@company.com becomes "Jane Smith".
func ExtractDisplayName(email string) string {
	if email == "" {
		return ""
	}

	local := strings.SplitN(email, "@", 2)[0]
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '+'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, titleWord(part))
	}
	return strings.Join(out, " ")
}

func titleWord(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
