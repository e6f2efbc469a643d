// Package http exposes the order coordination API over echo. Actors
// identify themselves through the X-Actor-Role and X-Actor-Id headers;
// authorization decisions stay in the domain and query layers, this
// package only translates them to status codes.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Actor identification headers.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-Id"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	checkoutHandler   commands.CheckoutOrderCommandHandler
	transitionHandler commands.TransitionOrderCommandHandler
	claimHandler      commands.ClaimOrderCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	geoResolver ports.GeoResolver
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewServer creates an HTTP server with the required command and query
// handlers plus the geo resolver backing the quote endpoint.
func NewServer(
	checkoutHandler commands.CheckoutOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	claimHandler commands.ClaimOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	geoResolver ports.GeoResolver,
	logger *slog.Logger,
) *Server {
	return &Server{
		checkoutHandler:   checkoutHandler,
		transitionHandler: transitionHandler,
		claimHandler:      claimHandler,
		getOrderHandler:   getOrderHandler,
		listOrdersHandler: listOrdersHandler,
		geoResolver:       geoResolver,
		validate:          validator.New(),
		logger:            logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CheckoutOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/quote", s.Quote)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CheckoutOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CheckoutOrder(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	deliveryAddress, err := addressFromDTO(req.DeliveryAddress)
	if err != nil {
		return s.mapError(ctx, err)
	}
	restaurantAddress, err := addressFromDTO(req.RestaurantAddress)
	if err != nil {
		return s.mapError(ctx, err)
	}
	items, err := itemsFromDTO(req.Items)
	if err != nil {
		return s.mapError(ctx, err)
	}

	cmd, err := commands.NewCheckoutOrderCommand(
		req.CustomerID,
		req.RestaurantID,
		deliveryAddress,
		restaurantAddress,
		items,
		req.Subtotal,
		req.CustomerNotes,
	)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orderID, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID})
}

// GetOrder handles GET /api/v1/orders/:id - one order, shaped for the viewer.
func (s *Server) GetOrder(ctx echo.Context) error {
	viewer, err := s.actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, viewer)
	if err != nil {
		return s.mapError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromView(view))
}

// ListOrders handles GET /api/v1/orders?scope= - order summaries for the
// viewer. Scope defaults to "mine".
func (s *Server) ListOrders(ctx echo.Context) error {
	viewer, err := s.actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	scope := queries.ListScope(ctx.QueryParam("scope"))
	if scope == "" {
		scope = queries.ScopeMine
	}

	query, err := queries.NewListOrdersQuery(viewer, scope)
	if err != nil {
		return s.mapError(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(views))
	for i, view := range views {
		response[i] = orderSummaryFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order along its lifecycle on behalf of the acting party.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	target, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return s.mapError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	if err != nil {
		return s.mapError(ctx, err)
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFromOrder(updated))
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - a driver claims an
// unassigned order. Exactly one concurrent claimer wins.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actor)
	if err != nil {
		return s.mapError(ctx, err)
	}

	claimed, err := s.claimHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFromOrder(claimed))
}

// Quote handles POST /api/v1/quote - returns the distance and the
// delivery fee it maps to, without creating an order. Callers either
// supply the distance directly or two addresses to resolve.
func (s *Server) Quote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	distanceKm := req.DistanceKm
	if distanceKm <= 0 {
		if req.DeliveryAddress == nil || req.RestaurantAddress == nil {
			return s.writeError(ctx, http.StatusBadRequest,
				"either distance_km or both delivery_address and restaurant_address are required")
		}

		var err error
		distanceKm, err = s.resolveQuoteDistance(ctx, *req.DeliveryAddress, *req.RestaurantAddress)
		if err != nil {
			return s.mapError(ctx, err)
		}
	}

	fee, err := services.CalculateDeliveryFee(distanceKm)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{DistanceKm: distanceKm, DeliveryFee: fee})
}

func (s *Server) resolveQuoteDistance(ctx echo.Context, delivery AddressDTO, restaurant AddressDTO) (float64, error) {
	deliveryAddress, err := addressFromDTO(delivery)
	if err != nil {
		return 0, err
	}
	restaurantAddress, err := addressFromDTO(restaurant)
	if err != nil {
		return 0, err
	}

	reqCtx := ctx.Request().Context()
	deliveryLocation, err := s.geoResolver.ResolveAddress(reqCtx, deliveryAddress)
	if err != nil {
		return 0, err
	}
	restaurantLocation, err := s.geoResolver.ResolveAddress(reqCtx, restaurantAddress)
	if err != nil {
		return 0, err
	}

	return restaurantLocation.Point().DistanceKm(deliveryLocation.Point())
}

func (s *Server) actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	role, err := kernel.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.Actor{}, err
	}

	id, err := strconv.ParseInt(ctx.Request().Header.Get(HeaderActorID), 10, 64)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}

	return kernel.NewActor(role, id)
}

func orderIDParam(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}

func addressFromDTO(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.Suburb, dto.State, dto.Postcode)
}

func itemsFromDTO(dtos []OrderLineDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := order.NewItem(dto.MenuItemID, dto.Quantity, dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// mapError translates domain and application errors into status codes.
// The taxonomy is fixed: conflicts for lost races and impossible
// transitions, forbidden for unauthorized actors, unprocessable for
// failed geocoding, bad request for anything invalid on the way in.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrForbidden):
		return s.writeErrorKind(ctx, http.StatusForbidden, ErrorKindForbidden, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return s.writeErrorKind(ctx, http.StatusConflict, ErrorKindInvalidTransition, err.Error())
	case errors.Is(err, order.ErrAlreadyAssigned):
		return s.writeErrorKind(ctx, http.StatusConflict, ErrorKindAlreadyAssigned, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return s.writeErrorKind(ctx, http.StatusNotFound, ErrorKindNotFound, err.Error())
	case errors.Is(err, ports.ErrResolutionFailed):
		return s.writeErrorKind(ctx, http.StatusUnprocessableEntity, ErrorKindResolutionFailed, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return s.writeErrorKind(ctx, http.StatusBadRequest, ErrorKindValidation, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		return s.writeErrorKind(ctx, http.StatusInternalServerError, ErrorKindInternal, "internal error")
	}
}

// writeError reports request-shape problems; anything coming out of the
// domain goes through mapError so it carries the right kind.
func (s *Server) writeError(ctx echo.Context, code int, message string) error {
	return s.writeErrorKind(ctx, code, ErrorKindValidation, message)
}

func (s *Server) writeErrorKind(ctx echo.Context, code int, kind, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Error: kind, Message: message})
}
