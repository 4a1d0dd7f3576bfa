package check

import (
	"strings"
	"testing/fstest"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"

	"github.com/midbel/xmlcheck/fetch"
)

// Status is the outcome of one validation run. Every failure mode of the
// engine maps onto exactly one of these.
type Status int

const (
	StatusValid Status = iota
	StatusInvalid
	StatusMalformed
	StatusFailed
)

type Result struct {
	Status Status
	Detail string
}

// remote schemas have no directory to load from, give them a fixed name
const schemaStub = "schema.xsd"

// Run validates the resolved document against the resolved schema. A schema
// that does not compile counts as a faulty file, not as an engine failure.
func Run(doc, schema fetch.Source) Result {
	engine, err := loadSchema(schema)
	if err != nil {
		return Result{
			Status: StatusMalformed,
			Detail: err.Error(),
		}
	}
	var verr error
	if doc.Remote() {
		verr = engine.Validate(strings.NewReader(doc.Body))
	} else {
		verr = engine.ValidateFile(doc.Path)
	}
	return classify(verr)
}

func loadSchema(src fetch.Source) (*xsd.Schema, error) {
	if src.Remote() {
		fsys := fstest.MapFS{
			schemaStub: &fstest.MapFile{Data: []byte(src.Body)},
		}
		return xsd.Load(fsys, schemaStub)
	}
	return xsd.LoadFile(src.Path)
}

func classify(err error) Result {
	if err == nil {
		return Result{Status: StatusValid}
	}
	violations, ok := xsderrors.AsValidations(err)
	if !ok {
		return Result{
			Status: StatusFailed,
			Detail: err.Error(),
		}
	}
	var lines []string
	for _, v := range violations {
		if v.Code == string(xsderrors.ErrXMLParse) {
			return Result{
				Status: StatusMalformed,
				Detail: v.Error(),
			}
		}
		lines = append(lines, v.Error())
	}
	return Result{
		Status: StatusInvalid,
		Detail: strings.Join(lines, "\n"),
	}
}
