package ast

import "testing"

// deliveryPower enables #deliver for any holder with a throwaway
// consequence, so gated firings in deontic scenarios go through.
func deliveryPower() (*Object, *PowerFrame) {
	delivered := NewInactiveObject("delivered")
	power := NewPowerFrame(
		Power,
		NewActionRef("#deliver"),
		NewProductionEventRef(NewObjectRef("delivered"), true),
		nil,
	)
	return delivered, power
}

func TestDeonticFrame_DutyFulfilledByHolder(t *testing.T) {
	alice := NewObject("alice")
	bob := NewObject("bob")
	delivered, power := deliveryPower()
	duty := NewDeonticFrame(Duty, NewActionRef("#deliver"), NewObjectRef("alice"), nil, nil, nil, nil)
	duty.SetAlias("delivery_duty")
	p := newTestProgram(t, alice, bob, delivered, power, duty)

	if duty.Fulfilled().Active() {
		t.Fatal("duty starts unfulfilled")
	}

	// Another entity performing the action does not discharge the duty.
	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": bob}); err != nil {
		t.Fatal(err)
	}
	if duty.Fulfilled().Active() {
		t.Fatal("only the holder's performance discharges the duty")
	}

	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": alice}); err != nil {
		t.Fatal(err)
	}
	if !duty.Fulfilled().Active() {
		t.Fatal("holder performing the action must set fulfilled")
	}
	if duty.Violated().Active() {
		t.Fatal("fulfillment must not touch violated")
	}
}

func TestDeonticFrame_ProhibitionViolatedByHolder(t *testing.T) {
	alice := NewObject("alice")
	delivered, power := deliveryPower()
	prohibition := NewDeonticFrame(Prohibition, NewActionRef("#deliver"), NewObjectRef("alice"), nil, nil, nil, nil)
	p := newTestProgram(t, alice, delivered, power, prohibition)

	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": alice}); err != nil {
		t.Fatal(err)
	}
	if !prohibition.Violated().Active() {
		t.Fatal("holder performing a prohibited action must set violated")
	}
	if prohibition.Fulfilled().Active() {
		t.Fatal("violation must not touch fulfilled")
	}
}

func TestDeonticFrame_ClaimReactsToCounterparty(t *testing.T) {
	alice := NewObject("alice")
	bob := NewObject("bob")
	delivered, power := deliveryPower()
	claim := NewDeonticFrame(Claim, NewActionRef("#deliver"), NewObjectRef("alice"), NewObjectRef("bob"), nil, nil, nil)
	p := newTestProgram(t, alice, bob, delivered, power, claim)

	// The claim holder's own performance is not what satisfies it.
	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": alice}); err != nil {
		t.Fatal(err)
	}
	if claim.Fulfilled().Active() {
		t.Fatal("the claim tracks the counterparty, not the holder")
	}

	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": bob}); err != nil {
		t.Fatal(err)
	}
	if !claim.Fulfilled().Active() {
		t.Fatal("the counterparty's performance must satisfy the claim")
	}
}

func TestDeonticFrame_InactiveFrameIgnoresAction(t *testing.T) {
	alice := NewObject("alice")
	delivered, power := deliveryPower()
	duty := NewDeonticFrame(Duty, NewActionRef("#deliver"), NewObjectRef("alice"), nil, nil, nil, nil)
	p := newTestProgram(t, alice, delivered, power, duty)

	if err := duty.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Registry().Action("#deliver").Fire(Args{"holder": alice}); err != nil {
		t.Fatal(err)
	}
	if duty.Fulfilled().Active() {
		t.Fatal("an inactive frame must not derive fulfillment")
	}
}

func TestDeonticFrame_ViolationCondition(t *testing.T) {
	alice := NewObject("alice")
	deadline := NewInactiveObject("deadline_passed")
	duty := NewDeonticFrame(
		Duty,
		NewActionRef("#deliver"),
		NewObjectRef("alice"),
		nil,
		&DeonticSpec{Condition: NewObjectCondition(NewObjectRef("deadline_passed"))},
		nil,
		nil,
	)
	newTestProgram(t, alice, deadline, duty)

	if duty.Violated().Active() {
		t.Fatal("violation condition does not hold yet")
	}
	if err := deadline.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if !duty.Violated().Active() {
		t.Fatal("violation condition becoming true must set violated")
	}
}

func TestDeonticFrame_FulfillmentEvent(t *testing.T) {
	alice := NewObject("alice")
	paid := NewInactiveObject("paid")
	duty := NewDeonticFrame(
		Duty,
		NewActionRef("#deliver"),
		NewObjectRef("alice"),
		nil,
		nil,
		&DeonticSpec{Event: NewProductionEventRef(NewObjectRef("paid"), true)},
		nil,
	)
	newTestProgram(t, alice, paid, duty)

	if err := paid.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if !duty.Fulfilled().Active() {
		t.Fatal("fulfillment event must set fulfilled")
	}
}

func TestDeonticFrame_TerminationDeactivatesFrame(t *testing.T) {
	alice := NewObject("alice")
	waived := NewInactiveObject("waived")
	duty := NewDeonticFrame(
		Duty,
		NewActionRef("#deliver"),
		NewObjectRef("alice"),
		nil,
		nil,
		nil,
		&DeonticSpec{Condition: NewObjectCondition(NewObjectRef("waived"))},
	)
	newTestProgram(t, alice, waived, duty)

	if !duty.Active() {
		t.Fatal("duty starts active")
	}
	if err := waived.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if duty.Active() {
		t.Fatal("termination condition becoming true must deactivate the frame")
	}
}
