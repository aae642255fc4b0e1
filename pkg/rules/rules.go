// Package rules implements the fraud screening rule engine. Rules are pure
// predicates over an Evaluation facts struct: the caller gathers profile
// aggregates up front and evaluation itself performs no I/O and no mutation.
package rules

import (
	"time"

	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
)

// Window is the look-back period for frequency rules.
const Window = 28 * 24 * time.Hour

// countThreshold is the "more than N" bound shared by the frequency and
// counterparty-count rules.
const countThreshold = 2

// highAmountThreshold is £120 in pence.
const highAmountThreshold = 12000

// Rule codes. FIUMONP..CPNUM are enabled for check creation; the remainder
// are informational only.
const (
	CodeFIUMonitoredPrisoner = "FIUMONP"
	CodeFIUMonitoredSender   = "FIUMONS"
	CodeSenderFrequency      = "CSFREQ"
	CodeSenderPrisonerCount  = "CSNUM"
	CodePrisonerSenderCount  = "CPNUM"
	CodePrisonerFrequency    = "CPFREQ"
	CodeNotWholeNumber       = "NWN"
	CodeHighAmount           = "HA"
)

// Evaluation carries one credit and the aggregate facts rules are judged
// against. Profile fields are nil when the credit could not be matched to a
// profile; rules requiring a profile do not apply then.
type Evaluation struct {
	Credit          *credit.Credit
	SenderProfile   *security.SenderProfile
	PrisonerProfile *security.PrisonerProfile

	SenderMonitored   bool
	PrisonerMonitored bool

	// Credits linked to the sender/prisoner profile within Window.
	SenderCreditsInWindow   int64
	PrisonerCreditsInWindow int64
	// Distinct counterparties over all time.
	SenderPrisonerCount int64
	PrisonerSenderCount int64
}

// Rule decides whether it is structurally applicable to a credit and whether
// its threshold logic fires. A rule is matched only when both hold.
type Rule interface {
	Code() string
	Description() string
	AppliesTo(ev *Evaluation) bool
	Triggered(ev *Evaluation) bool
}

type rule struct {
	code        string
	description string
	applies     func(ev *Evaluation) bool
	triggered   func(ev *Evaluation) bool
}

func (r rule) Code() string                  { return r.code }
func (r rule) Description() string           { return r.description }
func (r rule) AppliesTo(ev *Evaluation) bool { return r.applies(ev) }
func (r rule) Triggered(ev *Evaluation) bool { return r.triggered(ev) }

func hasSender(ev *Evaluation) bool   { return ev.SenderProfile != nil }
func hasPrisoner(ev *Evaluation) bool { return ev.PrisonerProfile != nil }
func always(*Evaluation) bool         { return true }

// Registry is the fixed table of known rules, keyed by code. It is
// explicitly enumerated, never discovered.
var Registry = map[string]Rule{
	CodeFIUMonitoredPrisoner: rule{
		code:        CodeFIUMonitoredPrisoner,
		description: "The prisoner is being monitored by the FIU",
		applies:     hasPrisoner,
		triggered:   func(ev *Evaluation) bool { return ev.PrisonerMonitored },
	},
	CodeFIUMonitoredSender: rule{
		code:        CodeFIUMonitoredSender,
		description: "The payment source is being monitored by the FIU",
		applies:     hasSender,
		triggered:   func(ev *Evaluation) bool { return ev.SenderMonitored },
	},
	CodeSenderFrequency: rule{
		code:        CodeSenderFrequency,
		description: "More than 2 payments from the same payment source in the last 4 weeks",
		applies:     hasSender,
		triggered:   func(ev *Evaluation) bool { return ev.SenderCreditsInWindow > countThreshold },
	},
	CodeSenderPrisonerCount: rule{
		code:        CodeSenderPrisonerCount,
		description: "From a payment source sending money to more than 2 prisoners",
		applies:     hasSender,
		triggered:   func(ev *Evaluation) bool { return ev.SenderPrisonerCount > countThreshold },
	},
	CodePrisonerSenderCount: rule{
		code:        CodePrisonerSenderCount,
		description: "Sent to a prisoner getting money from more than 2 payment sources",
		applies:     hasPrisoner,
		triggered:   func(ev *Evaluation) bool { return ev.PrisonerSenderCount > countThreshold },
	},

	// Informational rules, not enabled for check creation.
	CodePrisonerFrequency: rule{
		code:        CodePrisonerFrequency,
		description: "More than 2 payments to the same prisoner in the last 4 weeks",
		applies:     hasPrisoner,
		triggered:   func(ev *Evaluation) bool { return ev.PrisonerCreditsInWindow > countThreshold },
	},
	CodeNotWholeNumber: rule{
		code:        CodeNotWholeNumber,
		description: "Credits that are not a whole number",
		applies:     always,
		triggered:   func(ev *Evaluation) bool { return ev.Credit.Amount%100 != 0 },
	},
	CodeHighAmount: rule{
		code:        CodeHighAmount,
		description: "Credits over £120",
		applies:     always,
		triggered:   func(ev *Evaluation) bool { return ev.Credit.Amount > highAmountThreshold },
	},
}

// EnabledCodes lists the rules enabled for check creation, in evaluation
// order. Match results preserve this order.
var EnabledCodes = []string{
	CodeFIUMonitoredPrisoner,
	CodeFIUMonitoredSender,
	CodeSenderFrequency,
	CodeSenderPrisonerCount,
	CodePrisonerSenderCount,
}

// Match evaluates the enabled rules against ev and returns the codes of
// rules that both apply and trigger, in enabled order.
func Match(ev *Evaluation) []string {
	var matched []string
	for _, code := range EnabledCodes {
		r := Registry[code]
		if r.AppliesTo(ev) && r.Triggered(ev) {
			matched = append(matched, code)
		}
	}
	return matched
}
