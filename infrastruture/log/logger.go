// Package log builds the component loggers shared by the binaries.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/sirupsen/logrus"
)

const componentField = "component"

// ErrEmptyComponent is returned when a logger is requested without a name.
var ErrEmptyComponent = errors.New("logger component name is empty")

// New returns a logger tagged with component and printed as
// "<color>[COMPONENT]<reset> [LEVEL] message key=value ...".
func New(component, color string, out io.Writer) (*logrus.Entry, error) {
	if component == "" {
		return nil, ErrEmptyComponent
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&prefixFormatter{color: color})
	return l.WithField(componentField, component), nil
}

// SetLevel parses level and applies it to the entry's logger.
func SetLevel(e *logrus.Entry, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(lvl)
	return nil
}

// prefixFormatter renders entries in the colored bracket style.
type prefixFormatter struct {
	color string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	component, _ := e.Data[componentField].(string)
	fmt.Fprintf(&b, "%s %s[%s]%s [%s] %s",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, component, config.ColorReset,
		strings.ToUpper(e.Level.String()),
		e.Message,
	)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != componentField {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
