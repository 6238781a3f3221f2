// Package section locates the block of transaction lines (or table rows)
// inside a statement and flattens page breaks away.
package section

import "strings"

type textState int

const (
	seekingStart textState = iota
	armed
	inTransactions
	done
)

// TextOptions holds the markers of a text-line section.
type TextOptions struct {
	// TransactionsStart is contained in the delimiter line after which
	// transaction lines begin.
	TransactionsStart string
	// TransactionsEnd is the prefix of the line that ends the block.
	TransactionsEnd string
}

// Text scans pages in order for the line containing starter, then for the
// TransactionsStart delimiter, and collects the lines up to the end marker.
// The line preceding the starter is returned first as the header. Nil is
// returned when the starter never occurs.
func Text(pages [][]string, starter string, opts TextOptions) []string {
	if starter == "" {
		return nil
	}

	state := seekingStart
	header, previous := "", ""
	var lines []string

	for _, page := range pages {
		for _, line := range page {
			switch state {
			case seekingStart:
				if strings.Contains(line, starter) {
					header = previous
					state = armed
				}
			case armed:
				if strings.Contains(line, opts.TransactionsStart) {
					state = inTransactions
				}
			case inTransactions:
				if strings.HasPrefix(line, opts.TransactionsEnd) {
					state = done
					break
				}
				// continuation pages repeat the delimiter
				if opts.TransactionsStart != "" && strings.Contains(line, opts.TransactionsStart) {
					break
				}
				lines = append(lines, line)
			}
			if state == done {
				break
			}
			previous = line
		}
		if state == done {
			break
		}
	}

	if state == seekingStart {
		return nil
	}
	return append([]string{header}, lines...)
}

// Bounded returns the lines strictly between the first line containing
// start and the next line containing end. Without an end line the block
// runs to the last line; without a start line it is empty.
func Bounded(lines []string, start, end string) []string {
	var out []string
	inside := false
	for _, line := range lines {
		if !inside {
			if strings.Contains(line, start) {
				inside = true
			}
			continue
		}
		if strings.Contains(line, end) {
			break
		}
		out = append(out, line)
	}
	return out
}

// Flatten joins the lines of every page into one sequence.
func Flatten(pages [][]string) []string {
	var out []string
	for _, page := range pages {
		out = append(out, page...)
	}
	return out
}
