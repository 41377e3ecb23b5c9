// This file is part of Microvaders.
//
// Microvaders is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Microvaders is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Microvaders.  If not, see <https://www.gnu.org/licenses/>.

package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/buildkite/shellwords"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/input"
)

// Sentinel error patterns.
const (
	SyntaxError = "script: line %d: %s"
	Failed      = "script: line %d: expected %s %s but found %s"
)

// DefaultHold is the time a button is held for by the click command.
const DefaultHold = 100 * time.Millisecond

type command struct {
	line int
	args []string
}

// Script is a parsed script.
type Script struct {
	commands []command
}

// Parse a script. Commands are checked for syntax but not run.
func Parse(r io.Reader) (*Script, error) {
	scr := &Script{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		args, err := shellwords.Split(s)
		if err != nil {
			return nil, curated.Errorf(SyntaxError, line, err)
		}
		if len(args) == 0 {
			continue
		}
		args[0] = strings.ToLower(args[0])

		cmd := command{line: line, args: args}
		if err := check(cmd); err != nil {
			return nil, err
		}
		scr.commands = append(scr.commands, cmd)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("script: %v", err)
	}

	return scr, nil
}

// Len returns the number of commands in the script.
func (scr *Script) Len() int {
	return len(scr.commands)
}

func syntax(cmd command, msg string) error {
	return curated.Errorf(SyntaxError, cmd.line, msg)
}

func parseButton(cmd command, s string) (input.Button, error) {
	switch strings.ToUpper(s) {
	case "A":
		return input.ButtonA, nil
	case "B":
		return input.ButtonB, nil
	}
	return 0, syntax(cmd, fmt.Sprintf("unknown button (%s)", s))
}

// check the syntax of a command.
func check(cmd command) error {
	nargs := func(min, max int) error {
		n := len(cmd.args) - 1
		if n < min || n > max {
			return syntax(cmd, fmt.Sprintf("wrong number of arguments for %s", cmd.args[0]))
		}
		return nil
	}

	switch cmd.args[0] {
	case "press", "release":
		if err := nargs(1, 1); err != nil {
			return err
		}
		_, err := parseButton(cmd, cmd.args[1])
		return err
	case "click":
		if err := nargs(1, 2); err != nil {
			return err
		}
		if _, err := parseButton(cmd, cmd.args[1]); err != nil {
			return err
		}
		if len(cmd.args) == 3 {
			if _, err := time.ParseDuration(cmd.args[2]); err != nil {
				return syntax(cmd, err.Error())
			}
		}
	case "wait":
		if err := nargs(1, 1); err != nil {
			return err
		}
		if _, err := time.ParseDuration(cmd.args[1]); err != nil {
			return syntax(cmd, err.Error())
		}
	case "frames":
		if err := nargs(1, 1); err != nil {
			return err
		}
		if _, err := strconv.Atoi(cmd.args[1]); err != nil {
			return syntax(cmd, err.Error())
		}
	case "expect":
		if err := nargs(2, 2); err != nil {
			return err
		}
		switch cmd.args[1] {
		case "ship", "enemies", "shots":
			if _, err := strconv.Atoi(cmd.args[2]); err != nil {
				return syntax(cmd, err.Error())
			}
		case "run", "digest":
		default:
			return syntax(cmd, fmt.Sprintf("cannot expect %s", cmd.args[1]))
		}
	case "screenshot":
		return nargs(1, 1)
	case "log":
		return nargs(1, 1000)
	default:
		return syntax(cmd, fmt.Sprintf("unknown command (%s)", cmd.args[0]))
	}

	return nil
}
