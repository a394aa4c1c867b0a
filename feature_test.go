package triage_test

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/tomasbasham/triage"
)

// featureContext holds state for a single scenario.
type featureContext struct {
	queue    *triage.Queue
	patients map[uint64]triage.Patient
	preview  float64
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func initializeScenario(sc *godog.ScenarioContext) {
	fc := &featureContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.queue = nil
		fc.patients = make(map[uint64]triage.Patient)
		fc.preview = 0
		return ctx, nil
	})

	sc.Step(`^an empty triage queue$`, fc.anEmptyTriageQueue)
	sc.Step(`^an empty triage queue ordering ties by identifier$`, fc.anEmptyTriageQueueOrderingTiesByIdentifier)
	sc.Step(`^a patient with severity (\d+), waited (\d+) and treatment time (\d+) is previewed$`, fc.aPatientIsPreviewed)
	sc.Step(`^patient (\d+) arrives with severity (\d+), waited (\d+) and treatment time (\d+)$`, fc.patientArrives)
	sc.Step(`^patient (\d+) is reprioritized after waiting (\d+)$`, fc.patientIsReprioritized)
	sc.Step(`^the previewed score should be ([\d.]+)$`, fc.thePreviewedScoreShouldBe)
	sc.Step(`^doctors should see patients "([^"]*)"$`, fc.doctorsShouldSeePatients)
	sc.Step(`^the queue should be empty$`, fc.theQueueShouldBeEmpty)
}

func (fc *featureContext) anEmptyTriageQueue() error {
	fc.queue = triage.New()
	return nil
}

func (fc *featureContext) anEmptyTriageQueueOrderingTiesByIdentifier() error {
	fc.queue = triage.New(triage.WithTieBreak(triage.TieBreakPatientID))
	return nil
}

func (fc *featureContext) aPatientIsPreviewed(severity, waited, toTreat int) error {
	fc.preview = fc.queue.CalculatePositionScore(patient(0, uint64(severity), uint64(waited), uint64(toTreat)))
	return nil
}

func (fc *featureContext) patientArrives(id, severity, waited, toTreat int) error {
	p := patient(uint64(id), uint64(severity), uint64(waited), uint64(toTreat))
	fc.patients[p.ID] = p
	fc.queue.Push(p)
	return nil
}

func (fc *featureContext) patientIsReprioritized(id, waited int) error {
	p, ok := fc.patients[uint64(id)]
	if !ok {
		return fmt.Errorf("patient %d never arrived", id)
	}
	p.TimeWaited = uint64(waited)
	fc.patients[p.ID] = p

	if !fc.queue.Reprioritize(p) {
		return fmt.Errorf("patient %d is not queued", id)
	}
	return nil
}

func (fc *featureContext) thePreviewedScoreShouldBe(want float64) error {
	if math.Abs(fc.preview-want) >= triage.Epsilon {
		return fmt.Errorf("expected score %v, got %v", want, fc.preview)
	}
	return nil
}

func (fc *featureContext) doctorsShouldSeePatients(order string) error {
	for _, field := range strings.Split(order, ",") {
		want, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return fmt.Errorf("parse patient id %q: %w", field, err)
		}

		record, ok := fc.queue.PopMax()
		if !ok {
			return fmt.Errorf("expected patient %d, queue is empty", want)
		}
		if record.PatientID != want {
			return fmt.Errorf("expected patient %d, got %s", want, record)
		}
	}
	return nil
}

func (fc *featureContext) theQueueShouldBeEmpty() error {
	if record, ok := fc.queue.PeekMax(); ok {
		return fmt.Errorf("expected empty queue, next is %s", record)
	}
	if _, ok := fc.queue.PopMax(); ok {
		return fmt.Errorf("expected pop on empty queue to report empty")
	}
	return nil
}
