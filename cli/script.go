package cli

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wcgcyx/journaldb/journal"
	"github.com/wcgcyx/journaldb/trienode"
	itypes "github.com/wcgcyx/journaldb/types"
)

// Script commands
const (
	cmdWrite    = "write"
	cmdDelete   = "delete"
	cmdRead     = "read"
	cmdSnapshot = "snapshot"
	cmdRestore  = "restore"
	cmdCommit   = "commit"
	cmdPrint    = "print"
)

// scriptOp is a parsed script line.
type scriptOp struct {
	line     int
	cmd      string
	key      common.Hash
	value    []byte
	snapshot journal.Snapshot
}

// parseScript parses a replay script, one operation per line.
// Blank lines and lines starting with # are ignored.
func parseScript(r io.Reader) ([]scriptOp, error) {
	ops := make([]scriptOp, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		op := scriptOp{line: line, cmd: strings.ToLower(fields[0])}
		args := fields[1:]
		expected := 0
		switch op.cmd {
		case cmdWrite:
			expected = 2
		case cmdDelete, cmdRead, cmdRestore:
			expected = 1
		case cmdSnapshot, cmdCommit, cmdPrint:
		default:
			return nil, fmt.Errorf("line %v: unknown command %v", line, fields[0])
		}
		if len(args) != expected {
			return nil, fmt.Errorf("line %v: %v expects %v arguments, got %v", line, op.cmd, expected, len(args))
		}
		switch op.cmd {
		case cmdWrite:
			op.key = itypes.ParseKey(args[0])
			val, err := itypes.ParseValue(args[1])
			if err != nil {
				return nil, fmt.Errorf("line %v: invalid value %v: %w", line, args[1], err)
			}
			op.value = val
		case cmdDelete, cmdRead:
			op.key = itypes.ParseKey(args[0])
		case cmdRestore:
			snap, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("line %v: invalid snapshot %v: %w", line, args[0], err)
			}
			op.snapshot = journal.Snapshot(snap)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// runScript applies the operations to given journal, results are sent to output.
func runScript(j journal.Journal, ops []scriptOp, output func(string)) error {
	for _, op := range ops {
		switch op.cmd {
		case cmdWrite:
			j.Write(op.key, op.value)
		case cmdDelete:
			j.Delete(op.key)
		case cmdRead:
			val, ok, err := j.Read(op.key)
			if err != nil {
				return fmt.Errorf("line %v: %w", op.line, err)
			}
			if !ok {
				output(fmt.Sprintf("%v : <absent>", itypes.ShortKey(op.key)))
			} else {
				output(fmt.Sprintf("%v : 0x%x", itypes.ShortKey(op.key), val))
			}
		case cmdSnapshot:
			output(fmt.Sprintf("snapshot %v", j.TakeSnapshot()))
		case cmdRestore:
			if op.snapshot < journal.EmptySnapshot || op.snapshot > j.Position() {
				return fmt.Errorf("line %v: snapshot %v is not restorable at position %v", op.line, op.snapshot, j.Position())
			}
			j.Restore(op.snapshot)
		case cmdCommit:
			err := j.Commit()
			if err != nil {
				return fmt.Errorf("line %v: %w", op.line, err)
			}
		case cmdPrint:
			err := j.Print(output, trienode.Describe)
			if err != nil {
				return fmt.Errorf("line %v: %w", op.line, err)
			}
		}
	}
	return nil
}
