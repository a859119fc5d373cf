// Package http exposes the allocation engine over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Use case contracts the server calls.
type (
	ListUnallocatedOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListUnallocatedOrdersQuery) ([]queries.UnallocatedOrder, error)
	}

	GetAllocationsByStatusHandler interface {
		Handle(ctx context.Context, query queries.GetAllocationsByStatusQuery) ([]queries.AllocationView, error)
	}

	ProposeAllocationHandler interface {
		Handle(ctx context.Context, query queries.ProposeAllocationQuery) (services.Violations, error)
	}

	CommitAllocationHandler interface {
		Handle(ctx context.Context, command commands.CommitAllocationCommand) (commands.CommitAllocationResult, error)
	}

	CancelAllocationHandler interface {
		Handle(ctx context.Context, command commands.CancelAllocationCommand) (bool, error)
	}

	AdvanceAllocationHandler interface {
		Handle(ctx context.Context, command commands.AdvanceAllocationCommand) error
	}

	CancelOrderHandler interface {
		Handle(ctx context.Context, command commands.CancelOrderCommand) error
	}
)

// Handlers groups the use cases behind the API.
type Handlers struct {
	ListUnallocatedOrders  ListUnallocatedOrdersHandler
	GetAllocationsByStatus GetAllocationsByStatusHandler
	ProposeAllocation      ProposeAllocationHandler
	CommitAllocation       CommitAllocationHandler
	CancelAllocation       CancelAllocationHandler
	AdvanceAllocation      AdvanceAllocationHandler
	CancelOrder            CancelOrderHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// ListUnallocatedOrders handles GET /api/v1/orders/unallocated.
func (s *Server) ListUnallocatedOrders(ctx echo.Context, params ListUnallocatedOrdersParams) error {
	var city *kernel.City
	if params.City != nil {
		c, err := kernel.NewCity(*params.City)
		if err != nil {
			return writeError(ctx, err)
		}
		city = &c
	}

	query, err := queries.NewListUnallocatedOrdersQuery(city)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.ListUnallocatedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			Id:           o.ID.Bytes(),
			Destination:  o.Destination,
			RequiredDate: openapi_types.Date{Time: o.RequiredDate.Time()},
			SpaceUnits:   o.SpaceUnits,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAllocations handles GET /api/v1/allocations.
func (s *Server) GetAllocations(ctx echo.Context, params GetAllocationsParams) error {
	var statuses []allocation.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := allocation.ParseStatus(string(raw))
			if err != nil {
				return writeError(ctx, err)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewGetAllocationsByStatusQuery(statuses...)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.handlers.GetAllocationsByStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Allocation, len(views))
	for i, v := range views {
		response[i] = toAllocation(v.ID, v.Binding, v.Date, v.Hours, v.SpaceUnits, v.Status)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CommitAllocation handles POST /api/v1/allocations. A candidate that breaks
// allocation rules is answered with 422 and the violations.
func (s *Server) CommitAllocation(ctx echo.Context) error {
	var body Candidate
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	binding, date, hours, err := fromCandidate(body)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCommitAllocationCommand(binding, date, hours)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.CommitAllocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if !result.Committed() {
		return ctx.JSON(http.StatusUnprocessableEntity, Rejection{Violations: toViolations(result.Violations)})
	}

	a := result.Allocation
	return ctx.JSON(http.StatusCreated, toAllocation(a.ID(), a.Binding(), a.Date(), a.Hours(), a.SpaceUnits(), a.Status()))
}

// PreviewAllocation handles POST /api/v1/allocations/preview.
func (s *Server) PreviewAllocation(ctx echo.Context) error {
	var body Candidate
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	binding, date, hours, err := fromCandidate(body)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewProposeAllocationQuery(binding, date, hours)
	if err != nil {
		return writeError(ctx, err)
	}

	violations, err := s.handlers.ProposeAllocation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Preview{
		Accepted:   violations.OK(),
		Violations: toViolations(violations),
	})
}

// CancelAllocation handles POST /api/v1/allocations/{allocationId}/cancel.
// Operators cancel here; the order goes back to the backlog.
func (s *Server) CancelAllocation(ctx echo.Context, allocationId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(allocationId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelAllocationCommand(id, false)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.handlers.CancelAllocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Cancellation{Cancelled: cancelled})
}

// AdvanceAllocation handles POST /api/v1/allocations/{allocationId}/advance.
func (s *Server) AdvanceAllocation(ctx echo.Context, allocationId openapi_types.UUID) error {
	var body Advance
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, err := kernel.UUIDFromBytes(allocationId[:])
	if err != nil {
		return writeError(ctx, err)
	}
	next, err := allocation.ParseStatus(string(body.Status))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceAllocationCommand(id, next)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AdvanceAllocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func fromCandidate(c Candidate) (allocation.Binding, kernel.Date, decimal.Decimal, error) {
	ids := make([]kernel.UUID, 0, 6)
	for _, raw := range []openapi_types.UUID{c.OrderId, c.TrainTripId, c.StoreId, c.TruckId, c.DriverId, c.AssistantId} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return allocation.Binding{}, kernel.Date{}, decimal.Decimal{}, err
		}
		ids = append(ids, id)
	}

	binding := allocation.Binding{
		OrderID:     ids[0],
		TrainTripID: ids[1],
		StoreID:     ids[2],
		TruckID:     ids[3],
		DriverID:    ids[4],
		AssistantID: ids[5],
	}
	return binding, kernel.DateFromTime(c.Date.Time, time.UTC), decimal.NewFromFloat(c.Hours), nil
}

func toAllocation(
	id kernel.UUID,
	b allocation.Binding,
	date kernel.Date,
	hours decimal.Decimal,
	spaceUnits int,
	status allocation.Status,
) Allocation {
	return Allocation{
		Id:          id.Bytes(),
		OrderId:     b.OrderID.Bytes(),
		TrainTripId: b.TrainTripID.Bytes(),
		StoreId:     b.StoreID.Bytes(),
		TruckId:     b.TruckID.Bytes(),
		DriverId:    b.DriverID.Bytes(),
		AssistantId: b.AssistantID.Bytes(),
		Date:        openapi_types.Date{Time: date.Time()},
		Hours:       hours.InexactFloat64(),
		SpaceUnits:  spaceUnits,
		Status:      AllocationStatus(status.String()),
	}
}

func toViolations(vs services.Violations) []Violation {
	response := make([]Violation, len(vs))
	for i, v := range vs {
		response[i] = Violation{
			Code:      string(v.Code),
			Category:  string(v.Code.Category()),
			Subject:   string(v.Subject),
			SubjectId: v.SubjectID.Bytes(),
			Message:   v.Message,
		}
	}
	return response
}
