package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/supplier-hub/internal/core/domain"
	"github.com/rl1809/supplier-hub/internal/port"
)

var (
	ErrInvalidTarget      = errors.New("invalid target status")
	ErrTransitionInFlight = errors.New("order transition already in progress")
	ErrOrderNotPending    = errors.New("order is no longer pending")
	ErrOrderNotFound      = errors.New("order not found")
)

// PartialFailureError reports a cancellation whose stock restoration ran
// but whose status write then failed. The restoration is not rolled back;
// the inconsistency is surfaced for the caller to deal with.
type PartialFailureError struct {
	OrderID  int64
	Restored int
	Err      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("order %d: stock restored for %d details but status update failed: %v", e.OrderID, e.Restored, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

type TransitionRequest struct {
	OrderID      int64
	Target       domain.OrderStatus
	Details      []domain.OrderDetail
	SequenceNum  int64
	TrackingCode string
}

type TransitionResult struct {
	OrderID       int64              `json:"order_id"`
	SequenceNum   int64              `json:"sequence_num"`
	TrackingCode  string             `json:"tracking_code"`
	Status        domain.OrderStatus `json:"status"`
	StockRestored bool               `json:"stock_restored"`
	Restored      int                `json:"restored_details"`
	Failed        int                `json:"failed_details"`
	Message       string             `json:"message"`
}

// OrderService drives the pending -> {confirmed, cancelled} transition.
type OrderService struct {
	orders     port.OrderRepository
	reconciler *StockReconciler
	guard      port.TransitionGuard
	publisher  port.EventPublisher
}

func NewOrderService(orders port.OrderRepository, reconciler *StockReconciler, guard port.TransitionGuard, publisher port.EventPublisher) *OrderService {
	return &OrderService{
		orders:     orders,
		reconciler: reconciler,
		guard:      guard,
		publisher:  publisher,
	}
}

// TransitionOrder loads the order and, for a cancellation, its details,
// then runs Transition.
func (s *OrderService) TransitionOrder(ctx context.Context, orderID int64, target domain.OrderStatus) (*TransitionResult, error) {
	if target != domain.OrderStatusConfirmed && target != domain.OrderStatusCancelled {
		return nil, ErrInvalidTarget
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	var details []domain.OrderDetail
	if target == domain.OrderStatusCancelled {
		details, err = s.orders.ListDetailsByOrderIDs(ctx, []int64{orderID})
		if err != nil {
			return nil, fmt.Errorf("load order details: %w", err)
		}
	}

	return s.Transition(ctx, TransitionRequest{
		OrderID:      orderID,
		Target:       target,
		Details:      details,
		SequenceNum:  order.SequenceNum,
		TrackingCode: order.TrackingCode,
	})
}

// Transition performs the terminal status change. Target must be confirmed
// or cancelled and the order must still be pending. Cancellation restores
// stock strictly before the status write. At most one transition per order
// is in flight at a time; a concurrent attempt gets ErrTransitionInFlight.
func (s *OrderService) Transition(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	if req.Target != domain.OrderStatusConfirmed && req.Target != domain.OrderStatusCancelled {
		return nil, ErrInvalidTarget
	}

	ok, err := s.guard.TryAcquire(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("acquire transition guard: %w", err)
	}
	if !ok {
		return nil, ErrTransitionInFlight
	}
	defer func() {
		if err := s.guard.Release(ctx, req.OrderID); err != nil {
			log.Printf("order %d: release transition guard: %v", req.OrderID, err)
		}
	}()

	// Re-check status under the guard so a second sequential attempt is
	// rejected before it can restore stock a second time.
	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	res := &TransitionResult{
		OrderID:      req.OrderID,
		SequenceNum:  req.SequenceNum,
		TrackingCode: req.TrackingCode,
		Status:       req.Target,
	}

	if req.Target == domain.OrderStatusCancelled {
		res.Restored, res.Failed = s.reconciler.Restore(ctx, req.Details)
		res.StockRestored = true
	}

	updated, err := s.orders.UpdateStatusFromPending(ctx, req.OrderID, req.Target, time.Now())
	if err != nil {
		if res.StockRestored {
			return nil, &PartialFailureError{OrderID: req.OrderID, Restored: res.Restored, Err: err}
		}
		return nil, fmt.Errorf("persist status: %w", err)
	}
	if !updated {
		// Lost a race against another client between the status check
		// and the write.
		if res.StockRestored {
			return nil, &PartialFailureError{OrderID: req.OrderID, Restored: res.Restored, Err: ErrOrderNotPending}
		}
		return nil, ErrOrderNotPending
	}

	res.Message = transitionMessage(res)
	s.publish(ctx, res)

	return res, nil
}

func transitionMessage(res *TransitionResult) string {
	action := "confirmed"
	suffix := ""
	if res.Status == domain.OrderStatusCancelled {
		action = "cancelled"
		suffix = " and stock has been restored"
	}
	return fmt.Sprintf("Order #%d (%s) %s successfully%s", res.SequenceNum, res.TrackingCode, action, suffix)
}

func (s *OrderService) publish(ctx context.Context, res *TransitionResult) {
	if s.publisher == nil {
		return
	}

	evt := domain.TransitionEvent{
		EventID:       uuid.NewString(),
		OrderID:       res.OrderID,
		SequenceNum:   res.SequenceNum,
		TrackingCode:  res.TrackingCode,
		From:          domain.OrderStatusPending,
		To:            res.Status,
		StockRestored: res.StockRestored,
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.publisher.PublishTransition(ctx, evt); err != nil {
		log.Printf("order %d: publish transition event: %v", res.OrderID, err)
	}
}
