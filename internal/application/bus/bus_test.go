package bus

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

func testEvent(id string) entity.TransitionEvent {
	return entity.TransitionEvent{
		RecordID:  id,
		OldStatus: review.StatusSubmitted,
		NewStatus: review.StatusApproved,
	}
}

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	b := New(zap.NewNop())

	var order []string
	b.Subscribe("first", func(ctx context.Context, e entity.TransitionEvent) {
		order = append(order, "first")
	})
	b.Subscribe("second", func(ctx context.Context, e entity.TransitionEvent) {
		order = append(order, "second")
	})

	b.Publish(context.Background(), testEvent("sub_001"))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v, want [first second]", order)
	}
}

func TestPublish_PanickingListenerDoesNotStopDelivery(t *testing.T) {
	b := New(zap.NewNop())

	delivered := false
	b.Subscribe("bad", func(ctx context.Context, e entity.TransitionEvent) {
		panic("listener failure")
	})
	b.Subscribe("good", func(ctx context.Context, e entity.TransitionEvent) {
		delivered = true
	})

	b.Publish(context.Background(), testEvent("sub_001"))

	if !delivered {
		t.Error("listener after a panicking one was not invoked")
	}
}

func TestSubscription_Cancel(t *testing.T) {
	b := New(zap.NewNop())

	calls := 0
	sub := b.Subscribe("counter", func(ctx context.Context, e entity.TransitionEvent) {
		calls++
	})

	b.Publish(context.Background(), testEvent("sub_001"))
	sub.Cancel()
	b.Publish(context.Background(), testEvent("sub_001"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if b.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", b.ListenerCount())
	}
}

func TestSubscription_CancelTwiceIsNoop(t *testing.T) {
	b := New(zap.NewNop())

	subA := b.Subscribe("a", func(ctx context.Context, e entity.TransitionEvent) {})
	b.Subscribe("b", func(ctx context.Context, e entity.TransitionEvent) {})

	subA.Cancel()
	subA.Cancel()

	if b.ListenerCount() != 1 {
		t.Errorf("ListenerCount() = %d, want 1", b.ListenerCount())
	}
}

func TestPublish_EventCarriesTransitionData(t *testing.T) {
	b := New(zap.NewNop())

	var got entity.TransitionEvent
	b.Subscribe("capture", func(ctx context.Context, e entity.TransitionEvent) {
		got = e
	})

	b.Publish(context.Background(), entity.TransitionEvent{
		RecordID:   "sub_004",
		OldStatus:  review.StatusRejected,
		NewStatus:  review.StatusApproved,
		Reason:     "resubmission verified",
		ReviewerID: "admin_001",
	})

	if got.RecordID != "sub_004" || got.OldStatus != review.StatusRejected || got.NewStatus != review.StatusApproved {
		t.Errorf("listener received %+v", got)
	}
}
