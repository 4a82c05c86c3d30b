// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package report gathers and formats what runtime class instances report
// about themselves.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/cmd/rtinspect/internal/server"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/foundation"
	"github.com/dblohm7/winrt/rt"
)

// Report is the result of one rtinspect run.
type Report struct {
	Apartment string  `yaml:"apartment"`
	Classes   []Class `yaml:"classes"`
}

// Class describes one activated instance.
type Class struct {
	Class string `yaml:"class"`
	// Server is the class's activation registration, when it could be read.
	Server           *server.Registration `yaml:"server,omitempty"`
	RuntimeClassName string               `yaml:"runtimeClassName,omitempty"`
	TrustLevel       string               `yaml:"trustLevel,omitempty"`
	Agile            bool                 `yaml:"agile"`
	Interfaces       []Interface          `yaml:"interfaces,omitempty"`
	Probes           []Probe              `yaml:"probes,omitempty"`
	// Text is the IStringable representation, if the instance has one.
	Text  *string `yaml:"text,omitempty"`
	Error string  `yaml:"error,omitempty"`
}

// Interface is one entry of GetIids.
type Interface struct {
	IID  string `yaml:"iid"`
	Name string `yaml:"name,omitempty"`
}

// Probe is the outcome of querying for an interface that GetIids need not
// list.
type Probe struct {
	IID         string `yaml:"iid"`
	Name        string `yaml:"name,omitempty"`
	Implemented bool   `yaml:"implemented"`
}

var knownInterfaces = map[com.IID]string{
	*com.IID_IUnknown:                           "IUnknown",
	*com.IID_IAgileObject:                       "IAgileObject",
	*com.IID_ISequentialStream:                  "ISequentialStream",
	*com.IID_IStream:                            "IStream",
	*rt.IID_IInspectable:                        "IInspectable",
	*rt.IID_IActivationFactory:                  "IActivationFactory",
	*foundation.IID_IAsyncInfo:                  "Windows.Foundation.IAsyncInfo",
	*foundation.IID_IAsyncAction:                "Windows.Foundation.IAsyncAction",
	*foundation.IID_AsyncActionCompletedHandler: "Windows.Foundation.AsyncActionCompletedHandler",
	*foundation.IID_IStringable:                 "Windows.Foundation.IStringable",
	*foundation.IID_IClosable:                   "Windows.Foundation.IClosable",
}

// InterfaceName returns the name of a well-known interface, or "".
func InterfaceName(iid *com.IID) string {
	return knownInterfaces[*iid]
}

// Failed returns the number of classes that could not be fully inspected.
func (r *Report) Failed() int {
	var n int
	for _, c := range r.Classes {
		if c.Error != "" {
			n++
		}
	}
	return n
}

// Failure records an instance that could not be obtained at all.
func Failure(class string, err error) Class {
	return Class{Class: class, Error: err.Error()}
}

// Inspect describes the instance of class referenced by p, querying it for
// each of probes as well. Failures are recorded in the result's Error field;
// p is neither consumed nor released.
func Inspect[T com.Interface](class string, p *com.Ptr[T], probes []*com.IID) Class {
	c := Class{Class: class}

	info, err := rt.Describe(p)
	if err != nil {
		c.Error = errors.Wrap(err, "describing instance").Error()
		return c
	}
	c.RuntimeClassName = info.ClassName
	c.TrustLevel = info.TrustLevel.String()
	for i := range info.IIDs {
		c.Interfaces = append(c.Interfaces, Interface{
			IID:  info.IIDs[i].String(),
			Name: InterfaceName(&info.IIDs[i]),
		})
	}

	c.Agile = com.IsAgile(p)

	for _, iid := range probes {
		ok, err := rt.Implements(p, iid)
		if err != nil {
			c.Error = errors.Wrapf(err, "querying for %v", iid).Error()
			return c
		}
		c.Probes = append(c.Probes, Probe{IID: iid.String(), Name: InterfaceName(iid), Implemented: ok})
	}

	s, err := com.TryAs[foundation.IStringable](p)
	switch {
	case errors.Is(err, winrt.NoSuchInterface):
	case err != nil:
		c.Error = errors.Wrap(err, "querying for IStringable").Error()
	default:
		defer s.Release()
		text, err := s.Get().ToString()
		if err != nil {
			c.Error = errors.Wrap(err, "IStringable.ToString").Error()
			break
		}
		c.Text = &text
	}

	return c
}

// Write formats r as format, which is "text" or "yaml".
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case "text":
		return WriteText(w, r)
	case "yaml":
		return WriteYAML(w, r)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

// WriteYAML writes r as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encoding report")
	}
	return errors.Wrap(enc.Close(), "encoding report")
}

// WriteText writes r in a human-readable form.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "apartment: %s\n", r.Apartment)
	for _, c := range r.Classes {
		fmt.Fprintf(&b, "\n%s\n", c.Class)
		if c.Server != nil {
			fmt.Fprintf(&b, "  server:        %v\n", c.Server)
		}
		if c.RuntimeClassName != "" {
			fmt.Fprintf(&b, "  runtime class: %s\n", c.RuntimeClassName)
		}
		if c.TrustLevel != "" {
			fmt.Fprintf(&b, "  trust level:   %s\n", c.TrustLevel)
			fmt.Fprintf(&b, "  agile:         %t\n", c.Agile)
		}
		if len(c.Interfaces) > 0 {
			fmt.Fprintf(&b, "  interfaces:\n")
			for _, i := range c.Interfaces {
				writeIID(&b, i.IID, i.Name, "")
			}
		}
		if len(c.Probes) > 0 {
			fmt.Fprintf(&b, "  probes:\n")
			for _, p := range c.Probes {
				verdict := "no"
				if p.Implemented {
					verdict = "yes"
				}
				writeIID(&b, p.IID, p.Name, verdict)
			}
		}
		if c.Text != nil {
			fmt.Fprintf(&b, "  text:          %q\n", *c.Text)
		}
		if c.Error != "" {
			fmt.Fprintf(&b, "  error:         %s\n", c.Error)
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing report")
}

func writeIID(b *strings.Builder, iid, name, suffix string) {
	line := "    " + iid
	if name != "" {
		line += " " + name
	}
	if suffix != "" {
		line += ": " + suffix
	}
	b.WriteString(line + "\n")
}
