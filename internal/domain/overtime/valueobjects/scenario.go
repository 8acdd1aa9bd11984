package valueobjects

import "fmt"

// Scenario categorizes what kind of coverage a posting is for.
type Scenario string

const (
	ScenarioPatrolShortShift   Scenario = "PATROL_SHORT_SHIFT"
	ScenarioSergeantShortShift Scenario = "SERGEANT_SHORT_SHIFT"
	ScenarioSpecialEvent       Scenario = "SPECIAL_EVENT"
	ScenarioOtherOvertime      Scenario = "OTHER_OVERTIME"
)

var validScenarios = map[Scenario]bool{
	ScenarioPatrolShortShift:   true,
	ScenarioSergeantShortShift: true,
	ScenarioSpecialEvent:       true,
	ScenarioOtherOvertime:      true,
}

func (s Scenario) String() string {
	return string(s)
}

func (s Scenario) IsValid() bool {
	return validScenarios[s]
}

func NewScenario(v string) (Scenario, error) {
	s := Scenario(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid scenario: %s", v)
	}
	return s, nil
}
