// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"gopmove/conlog"
)

// Tokenize splits a console line into its arguments. Quoted strings
// stay one argument and everything after // is dropped.
func Tokenize(line string) []string {
	var args []string
	s := strings.TrimSpace(line)
	for len(s) > 0 {
		switch {
		case s[0] == ' ' || s[0] == '\t':
			s = s[1:]
		case strings.HasPrefix(s, "//"):
			return args
		case s[0] == '"':
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				// unterminated, take the rest
				return append(args, s[1:])
			}
			args = append(args, s[1:end+1])
			s = s[end+2:]
		default:
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			args = append(args, s[:end])
			s = s[end:]
		}
	}
	return args
}

// Execute handles "<cvar>" and "<cvar> <value>" lines as well as
// "set <cvar> <value>". It reports whether the line named a cvar.
func Execute(line string) (bool, error) {
	args := Tokenize(line)
	if len(args) == 0 {
		return false, nil
	}
	if args[0] == "set" {
		if len(args) < 3 {
			return true, errors.New("set <cvar> <value>")
		}
		return true, Set(args[1], args[2])
	}
	cv, ok := Get(args[0])
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1])
	return true, nil
}

// Exec runs every line of a config file.
func Exec(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		ok, err := Execute(sc.Text())
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		if !ok && len(Tokenize(sc.Text())) > 0 {
			conlog.Printf("Unknown command \"%s\"\n", Tokenize(sc.Text())[0])
		}
	}
	return errors.Wrap(sc.Err(), "exec")
}
