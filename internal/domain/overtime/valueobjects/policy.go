package valueobjects

import "fmt"

// OrderingPolicy is the rule used to rank signups for display and
// allocation-order reporting. It never gates whether a claim is admitted.
type OrderingPolicy string

const (
	PolicyFirstComeFirstServed OrderingPolicy = "FIRST_COME_FIRST_SERVED"
	PolicySeniority            OrderingPolicy = "SENIORITY"
)

var validPolicies = map[OrderingPolicy]bool{
	PolicyFirstComeFirstServed: true,
	PolicySeniority:            true,
}

func (p OrderingPolicy) String() string {
	return string(p)
}

func (p OrderingPolicy) IsValid() bool {
	return validPolicies[p]
}

func (p OrderingPolicy) IsSeniority() bool {
	return p == PolicySeniority
}

func NewOrderingPolicy(s string) (OrderingPolicy, error) {
	p := OrderingPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid ordering policy: %s", s)
	}
	return p, nil
}
