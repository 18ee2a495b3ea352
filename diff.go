package csfix

import (
	"fmt"
	"strings"
)

const diffContextLines = 3

// maxDiffDistance caps the Myers search. Past this many edits the preview
// degrades to a whole-file replacement instead of burning quadratic time.
const maxDiffDistance = 1000

type diffOpKind int

const (
	diffKeep diffOpKind = iota
	diffDelete
	diffInsert
)

type diffOp struct {
	kind diffOpKind
	text string
}

type hunk struct {
	aStart, aLen int
	bStart, bLen int
	ops          []diffOp
}

// UnifiedDiff renders the line differences between before and after as a
// unified diff with three lines of context. It returns "" when the documents
// are equal.
func UnifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	ops := diffLines(strings.Split(before, "\n"), strings.Split(after, "\n"))
	hunks := buildHunks(ops)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, h := range hunks {
		aStart, bStart := h.aStart, h.bStart
		if h.aLen == 0 {
			aStart--
		}
		if h.bLen == 0 {
			bStart--
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", aStart, h.aLen, bStart, h.bLen)
		for _, op := range h.ops {
			switch op.kind {
			case diffDelete:
				sb.WriteString("-")
			case diffInsert:
				sb.WriteString("+")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(op.text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// diffLines computes a line-level edit script from a to b. The common prefix
// and suffix are trimmed first so the search only sees the changed middle.
func diffLines(a, b []string) []diffOp {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	mid := myersDiff(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])

	ops := make([]diffOp, 0, prefix+len(mid)+suffix)
	for _, line := range a[:prefix] {
		ops = append(ops, diffOp{kind: diffKeep, text: line})
	}
	ops = append(ops, mid...)
	for _, line := range a[len(a)-suffix:] {
		ops = append(ops, diffOp{kind: diffKeep, text: line})
	}
	return ops
}

func myersDiff(a, b []string) []diffOp {
	n, m := len(a), len(b)
	switch {
	case n == 0 && m == 0:
		return nil
	case n == 0:
		return insertAll(b)
	case m == 0:
		return deleteAll(a)
	}

	limit := n + m
	if limit > maxDiffDistance {
		limit = maxDiffDistance
	}
	offset := limit
	v := make([]int, 2*limit+2)
	var trace [][]int

	for d := 0; d <= limit; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return backtrackOps(a, b, trace, d, offset)
			}
		}
	}

	// Too many edits to read as a line diff; present a replacement instead.
	return append(deleteAll(a), insertAll(b)...)
}

func backtrackOps(a, b []string, trace [][]int, dist, offset int) []diffOp {
	var rev []diffOp
	x, y := len(a), len(b)

	for d := dist; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			rev = append(rev, diffOp{kind: diffKeep, text: a[x-1]})
			x--
			y--
		}
		if d > 0 {
			if x == prevX {
				rev = append(rev, diffOp{kind: diffInsert, text: b[prevY]})
			} else {
				rev = append(rev, diffOp{kind: diffDelete, text: a[prevX]})
			}
		}
		x, y = prevX, prevY
	}

	out := make([]diffOp, len(rev))
	for i, op := range rev {
		out[len(rev)-1-i] = op
	}
	return out
}

func buildHunks(ops []diffOp) []hunk {
	type pos struct{ a, b int }
	positions := make([]pos, len(ops)+1)
	a, b := 1, 1
	for i, op := range ops {
		positions[i] = pos{a, b}
		switch op.kind {
		case diffDelete:
			a++
		case diffInsert:
			b++
		default:
			a++
			b++
		}
	}
	positions[len(ops)] = pos{a, b}

	var hunks []hunk
	i := 0
	for i < len(ops) {
		if ops[i].kind == diffKeep {
			i++
			continue
		}

		start := i - diffContextLines
		if start < 0 {
			start = 0
		}

		// Runs of edits separated by at most two context windows share a hunk.
		end := i + 1
		gap := 0
		for j := i + 1; j < len(ops); j++ {
			if ops[j].kind == diffKeep {
				gap++
				if gap > 2*diffContextLines {
					break
				}
				continue
			}
			end = j + 1
			gap = 0
		}
		tail := end + diffContextLines
		if tail > len(ops) {
			tail = len(ops)
		}

		h := hunk{
			aStart: positions[start].a,
			bStart: positions[start].b,
			ops:    ops[start:tail],
		}
		for _, op := range h.ops {
			switch op.kind {
			case diffDelete:
				h.aLen++
			case diffInsert:
				h.bLen++
			default:
				h.aLen++
				h.bLen++
			}
		}
		hunks = append(hunks, h)
		i = tail
	}
	return hunks
}

func insertAll(lines []string) []diffOp {
	ops := make([]diffOp, len(lines))
	for i, line := range lines {
		ops[i] = diffOp{kind: diffInsert, text: line}
	}
	return ops
}

func deleteAll(lines []string) []diffOp {
	ops := make([]diffOp, len(lines))
	for i, line := range lines {
		ops[i] = diffOp{kind: diffDelete, text: line}
	}
	return ops
}
