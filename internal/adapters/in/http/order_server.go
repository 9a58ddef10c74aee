package http

import (
	"net/http"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// OrderServer handles the order service's REST API.
// It coordinates between HTTP handlers and application use cases.
type OrderServer struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler

	getOrderHandler             queries.GetOrderQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
}

// NewOrderServer creates the order API server with its command and query
// handlers.
func NewOrderServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
) *OrderServer {
	return &OrderServer{
		createOrderHandler:          createOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		assignCourierHandler:        assignCourierHandler,
		getOrderHandler:             getOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
	}
}

// RegisterRoutes mounts the order API on the echo instance.
func (s *OrderServer) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/assign", s.AssignCourier)
}

// CreateOrder handles POST /api/v1/orders.
func (s *OrderServer) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId: "+err.Error())
	}

	priority := order.Priority(req.Priority)
	if req.Priority == "" {
		priority = order.PriorityStandard
	}

	addresses := make([]order.Address, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		address, addrErr := order.NewAddress(order.AddressType(a.Type), a.ContactName, a.ContactPhone, a.StreetAddress)
		if addrErr != nil {
			return badRequest(ctx, "Invalid address: "+addrErr.Error())
		}
		addresses = append(addresses, address)
	}

	parcels := make([]order.Parcel, 0, len(req.Parcels))
	for _, p := range req.Parcels {
		parcel, parcelErr := order.NewParcel(p.ParcelNumber, p.Description, p.WeightKg)
		if parcelErr != nil {
			return badRequest(ctx, "Invalid parcel: "+parcelErr.Error())
		}
		parcels = append(parcels, parcel)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, priority, addresses, parcels, req.EstimatedDeliveryTime,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, statusForHandlerError(err), "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *OrderServer) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, statusForHandlerError(err), "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(resp))
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *OrderServer) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderSummaryResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			CustomerID:  o.CustomerID.String(),
			Priority:    o.Priority,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		}
		if o.CourierID != nil {
			courier := o.CourierID.String()
			response[i].CourierID = &courier
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
// Responds 403 when the reporting courier is not the assigned one and 409
// when the requested transition is not allowed from the current status.
func (s *OrderServer) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courierId: "+err.Error())
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	var coordinate *kernel.GeoPoint
	if req.Latitude != nil && req.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
		if geoErr != nil {
			return badRequest(ctx, "Invalid coordinate: "+geoErr.Error())
		}
		coordinate = &point
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, courierID, target, req.Note, coordinate)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, statusForHandlerError(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign, the manual
// assignment path for dispatchers.
func (s *OrderServer) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courierId: "+err.Error())
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, req.VehicleID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, statusForHandlerError(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return errorResponse(ctx, http.StatusBadRequest, message)
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
