package thrackle

import (
	"github.com/matzehuels/thrackle/pkg/errors"
)

// Advisory is a rejected operation reported to the user-facing channel.
type Advisory struct {
	Kind    errors.Kind
	Code    errors.Code
	Message string
}

// Advisor receives advisories. Implementations typically surface them as
// notifications; the graph itself never blocks on them.
type Advisor interface {
	Advise(Advisory)
}

// AdvisorFunc adapts a function to [Advisor].
type AdvisorFunc func(Advisory)

// Advise calls f(a).
func (f AdvisorFunc) Advise(a Advisory) { f(a) }

// Collector is an Advisor that records every advisory it receives.
type Collector struct {
	Advisories []Advisory
}

// Advise appends a to c.Advisories.
func (c *Collector) Advise(a Advisory) { c.Advisories = append(c.Advisories, a) }

// Last returns the most recent advisory and whether there was one.
func (c *Collector) Last() (Advisory, bool) {
	if len(c.Advisories) == 0 {
		return Advisory{}, false
	}
	return c.Advisories[len(c.Advisories)-1], true
}

type nopAdvisor struct{}

func (nopAdvisor) Advise(Advisory) {}

// Report publishes err on the advisor and returns it unchanged. Errors
// without a code are published as internal advisories.
func Report(a Advisor, err error) error {
	if err == nil || a == nil {
		return err
	}
	a.Advise(Advisory{
		Kind:    errors.GetKind(err),
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	})
	return err
}
