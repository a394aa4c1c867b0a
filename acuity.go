package triage

import "fmt"

// Acuity is the named severity band of a patient. It is informational only;
// ordering is decided by the position score.
type Acuity struct {
	acuity
}

// AcuityOf returns the band containing the given severity score. Scores at or
// above [MaxSeverity] fall into the resuscitation band.
func AcuityOf(severity uint64) Acuity {
	switch {
	case severity >= 80:
		return Acuities.Resuscitation
	case severity >= 60:
		return Acuities.Emergent
	case severity >= 40:
		return Acuities.Urgent
	case severity >= 20:
		return Acuities.LessUrgent
	default:
		return Acuities.NonUrgent
	}
}

// ParseAcuity creates a new [Acuity] from the given value.
func ParseAcuity(a any) Acuity {
	switch v := a.(type) {
	case Acuity:
		return v
	case string:
		return Acuity{stringToAcuity(v)}
	case fmt.Stringer:
		return Acuity{stringToAcuity(v.String())}
	case int:
		return Acuity{acuity(v)}
	case int64:
		return Acuity{acuity(int(v))}
	case int32:
		return Acuity{acuity(int(v))}
	default:
		return Acuity{acuityUnknown}
	}
}

func (a Acuity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Acuity) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*a = ParseAcuity(s)
	return nil
}

// MarshalText lets an [Acuity] be used as a JSON object key.
func (a Acuity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Acuity) UnmarshalText(b []byte) error {
	*a = ParseAcuity(string(b))
	return nil
}

// Acuities references every [Acuity] value by name.
var Acuities = acuityContainer{
	Unknown:       Acuity{acuityUnknown},
	NonUrgent:     Acuity{acuityNonUrgent},
	LessUrgent:    Acuity{acuityLessUrgent},
	Urgent:        Acuity{acuityUrgent},
	Emergent:      Acuity{acuityEmergent},
	Resuscitation: Acuity{acuityResuscitation},
}

// All returns all possible acuities, least pressing first.
func (c acuityContainer) All() []Acuity {
	return []Acuity{c.Unknown, c.NonUrgent, c.LessUrgent, c.Urgent, c.Emergent, c.Resuscitation}
}

type acuity int

const (
	acuityUnknown       acuity = 0
	acuityNonUrgent     acuity = 10
	acuityLessUrgent    acuity = 20
	acuityUrgent        acuity = 30
	acuityEmergent      acuity = 40
	acuityResuscitation acuity = 50
)

var (
	strAcuityMap = map[acuity]string{
		acuityUnknown:       "unknown",
		acuityNonUrgent:     "non-urgent",
		acuityLessUrgent:    "less-urgent",
		acuityUrgent:        "urgent",
		acuityEmergent:      "emergent",
		acuityResuscitation: "resuscitation",
	}

	typeAcuityMap = map[string]acuity{
		"unknown":       acuityUnknown,
		"non-urgent":    acuityNonUrgent,
		"less-urgent":   acuityLessUrgent,
		"urgent":        acuityUrgent,
		"emergent":      acuityEmergent,
		"resuscitation": acuityResuscitation,
	}
)

func (a acuity) String() string {
	if s, ok := strAcuityMap[a]; ok {
		return s
	}
	return strAcuityMap[acuityUnknown]
}

func (a acuity) IsValid() bool {
	_, ok := strAcuityMap[a]
	return ok
}

func stringToAcuity(s string) acuity {
	if v, ok := typeAcuityMap[s]; ok {
		return v
	}
	return acuityUnknown
}

type acuityContainer struct {
	Unknown       Acuity
	NonUrgent     Acuity
	LessUrgent    Acuity
	Urgent        Acuity
	Emergent      Acuity
	Resuscitation Acuity
}
