package objstore

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ParseCommit parses the header block of a commit payload.
//
// Lines are "key value" pairs split on the first space or tab, up to the first empty
// line. Lines starting with a space continue the previous value (gpgsig,
// mergetag). Every "parent" line is collected in order.
func ParseCommit(payload []byte) (*Commit, error) {
	c := &Commit{}
	haveTree := false

	rest := payload
	for len(rest) > 0 {
		line, tail, _ := bytes.Cut(rest, []byte{'\n'})
		rest = tail

		if len(line) == 0 {
			c.Message = rest
			break
		}

		if line[0] == ' ' {
			if len(c.Headers) == 0 {
				return nil, corruptf("continuation line before any header")
			}
			last := &c.Headers[len(c.Headers)-1]
			last.Value += "\n" + string(line[1:])
			continue
		}

		sep := bytes.IndexAny(line, " \t")
		if sep < 0 {
			return nil, corruptf("header line %q has no value", line)
		}
		key, value := string(line[:sep]), string(line[sep+1:])

		switch key {
		case "tree":
			if haveTree {
				return nil, corruptf("duplicate tree header")
			}
			h, err := ParseHash(value)
			if err != nil {
				return nil, corruptf("tree header: %v", err)
			}
			c.Tree = h
			haveTree = true
		case "parent":
			for _, field := range strings.Fields(value) {
				h, err := ParseHash(field)
				if err != nil {
					return nil, corruptf("parent header: %v", err)
				}
				c.Parents = append(c.Parents, h)
			}
		}

		c.Headers = append(c.Headers, Header{Key: key, Value: value})
	}

	if !haveTree {
		return nil, corruptf("missing tree header")
	}
	return c, nil
}

// ReadCommit decodes and parses the commit h.
func (s *Store) ReadCommit(h plumbing.Hash) (*Commit, error) {
	obj, err := s.Decode(h)
	if err != nil {
		return nil, err
	}
	if obj.Kind != plumbing.CommitObject {
		return nil, &ObjectError{Op: "read commit", Hash: h, Err: fmt.Errorf("%w: got %s", ErrUnexpectedKind, obj.Kind)}
	}

	c, err := ParseCommit(obj.Payload)
	if err != nil {
		return nil, &ObjectError{Op: "parse commit", Hash: h, Err: err}
	}
	c.Hash = h
	return c, nil
}
