// Package sqlguard vets model-generated SQL before it reaches the database.
package sqlguard

import (
	"regexp"
	"strings"
)

var destructiveKeywords = []string{"drop", "delete", "alter", "update", "truncate", "insert", "replace"}

var (
	fencedSQL  = regexp.MustCompile("(?is)```sql(.*?)```")
	selectTail = regexp.MustCompile(`(?is)(select .*;?)`)
)

// IsDestructive reports whether sql mentions any write or DDL keyword.
// The check is a plain substring match, so identifiers such as
// "updated_at" are rejected too.
func IsDestructive(sql string) bool {
	lower := strings.ToLower(sql)
	for _, k := range destructiveKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ExtractSQL pulls the statement out of a model reply: the first ```sql
// fence, else everything from the first "select ", else the whole reply.
func ExtractSQL(reply string) string {
	if m := fencedSQL.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := selectTail.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(reply)
}

// Prose returns the reply with any ```sql fence removed, trimmed. Used as
// the human-readable summary when the model writes one.
func Prose(reply string) string {
	return strings.TrimSpace(fencedSQL.ReplaceAllString(reply, ""))
}
