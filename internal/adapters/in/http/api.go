package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// AllocationStatus is the wire form of an allocation status.
type AllocationStatus string

const (
	AllocationStatusScheduled  AllocationStatus = "Scheduled"
	AllocationStatusInProgress AllocationStatus = "InProgress"
	AllocationStatusCompleted  AllocationStatus = "Completed"
	AllocationStatusCancelled  AllocationStatus = "Cancelled"
)

// Order defines model for Order.
type Order struct {
	Id           openapi_types.UUID `json:"id"`
	Destination  string             `json:"destination"`
	RequiredDate openapi_types.Date `json:"requiredDate"`
	SpaceUnits   int                `json:"spaceUnits"`
}

// Candidate defines model for Candidate.
type Candidate struct {
	OrderId     openapi_types.UUID `json:"orderId"`
	TrainTripId openapi_types.UUID `json:"trainTripId"`
	StoreId     openapi_types.UUID `json:"storeId"`
	TruckId     openapi_types.UUID `json:"truckId"`
	DriverId    openapi_types.UUID `json:"driverId"`
	AssistantId openapi_types.UUID `json:"assistantId"`
	Date        openapi_types.Date `json:"date"`
	Hours       float64            `json:"hours"`
}

// Allocation defines model for Allocation.
type Allocation struct {
	Id          openapi_types.UUID `json:"id"`
	OrderId     openapi_types.UUID `json:"orderId"`
	TrainTripId openapi_types.UUID `json:"trainTripId"`
	StoreId     openapi_types.UUID `json:"storeId"`
	TruckId     openapi_types.UUID `json:"truckId"`
	DriverId    openapi_types.UUID `json:"driverId"`
	AssistantId openapi_types.UUID `json:"assistantId"`
	Date        openapi_types.Date `json:"date"`
	Hours       float64            `json:"hours"`
	SpaceUnits  int                `json:"spaceUnits"`
	Status      AllocationStatus   `json:"status"`
}

// Violation defines model for Violation.
type Violation struct {
	Code      string             `json:"code"`
	Category  string             `json:"category"`
	Subject   string             `json:"subject"`
	SubjectId openapi_types.UUID `json:"subjectId"`
	Message   string             `json:"message"`
}

// Preview defines model for Preview.
type Preview struct {
	Accepted   bool        `json:"accepted"`
	Violations []Violation `json:"violations"`
}

// Rejection defines model for Rejection.
type Rejection struct {
	Violations []Violation `json:"violations"`
}

// Advance defines model for Advance.
type Advance struct {
	Status AllocationStatus `json:"status"`
}

// Cancellation defines model for Cancellation.
type Cancellation struct {
	Cancelled bool `json:"cancelled"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListUnallocatedOrdersParams defines parameters for ListUnallocatedOrders.
type ListUnallocatedOrdersParams struct {
	City *string `form:"city,omitempty" json:"city,omitempty"`
}

// GetAllocationsParams defines parameters for GetAllocations.
type GetAllocationsParams struct {
	Status *[]AllocationStatus `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List pending orders
	// (GET /api/v1/orders/unallocated)
	ListUnallocatedOrders(ctx echo.Context, params ListUnallocatedOrdersParams) error
	// Cancel an order on behalf of the customer
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// List allocations by status
	// (GET /api/v1/allocations)
	GetAllocations(ctx echo.Context, params GetAllocationsParams) error
	// Commit an allocation
	// (POST /api/v1/allocations)
	CommitAllocation(ctx echo.Context) error
	// Check a candidate without reserving anything
	// (POST /api/v1/allocations/preview)
	PreviewAllocation(ctx echo.Context) error
	// Cancel an allocation and return its order to the backlog
	// (POST /api/v1/allocations/{allocationId}/cancel)
	CancelAllocation(ctx echo.Context, allocationId openapi_types.UUID) error
	// Move an allocation to its next status
	// (POST /api/v1/allocations/{allocationId}/advance)
	AdvanceAllocation(ctx echo.Context, allocationId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListUnallocatedOrders(ctx echo.Context) error {
	var params ListUnallocatedOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "city", ctx.QueryParams(), &params.City)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter city: %s", err))
	}

	return w.Handler.ListUnallocatedOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPathParameter(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetAllocations(ctx echo.Context) error {
	var params GetAllocationsParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetAllocations(ctx, params)
}

func (w *ServerInterfaceWrapper) CommitAllocation(ctx echo.Context) error {
	return w.Handler.CommitAllocation(ctx)
}

func (w *ServerInterfaceWrapper) PreviewAllocation(ctx echo.Context) error {
	return w.Handler.PreviewAllocation(ctx)
}

func (w *ServerInterfaceWrapper) CancelAllocation(ctx echo.Context) error {
	allocationId, err := bindUUIDPathParameter(ctx, "allocationId")
	if err != nil {
		return err
	}
	return w.Handler.CancelAllocation(ctx, allocationId)
}

func (w *ServerInterfaceWrapper) AdvanceAllocation(ctx echo.Context) error {
	allocationId, err := bindUUIDPathParameter(ctx, "allocationId")
	if err != nil {
		return err
	}
	return w.Handler.AdvanceAllocation(ctx, allocationId)
}

func bindUUIDPathParameter(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders/unallocated", wrapper.ListUnallocatedOrders)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.GET(baseURL+"/api/v1/allocations", wrapper.GetAllocations)
	router.POST(baseURL+"/api/v1/allocations", wrapper.CommitAllocation)
	router.POST(baseURL+"/api/v1/allocations/preview", wrapper.PreviewAllocation)
	router.POST(baseURL+"/api/v1/allocations/:allocationId/cancel", wrapper.CancelAllocation)
	router.POST(baseURL+"/api/v1/allocations/:allocationId/advance", wrapper.AdvanceAllocation)
}
