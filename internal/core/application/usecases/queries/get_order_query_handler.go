package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// orderRow mirrors one row of the orders table for the read side.
type orderRow struct {
	id           int64
	customerID   int64
	restaurantID int64
	driverID     *int64
	status       order.Status

	deliveryStreet   string
	deliverySuburb   string
	deliveryState    string
	deliveryPostcode string

	restaurantStreet   string
	restaurantSuburb   string
	restaurantState    string
	restaurantPostcode string

	deliveryLat   *float64
	deliveryLng   *float64
	restaurantLat *float64
	restaurantLng *float64

	orderPrice  float64
	deliveryFee *float64

	orderTime    time.Time
	pickupTime   *time.Time
	deliveryTime *time.Time

	customerNotes   string
	restaurantNotes string
}

const orderColumns = `
	id,
	customer_id,
	restaurant_id,
	driver_id,
	status,
	delivery_street,
	delivery_suburb,
	delivery_state,
	delivery_postcode,
	restaurant_street,
	restaurant_suburb,
	restaurant_state,
	restaurant_postcode,
	delivery_lat,
	delivery_lng,
	restaurant_lat,
	restaurant_lng,
	order_price,
	delivery_fee,
	order_time,
	pickup_time,
	delivery_time,
	customer_notes,
	restaurant_notes`

func scanOrderRow(scan func(dest ...any) error) (orderRow, error) {
	var row orderRow
	var status string

	err := scan(
		&row.id,
		&row.customerID,
		&row.restaurantID,
		&row.driverID,
		&status,
		&row.deliveryStreet,
		&row.deliverySuburb,
		&row.deliveryState,
		&row.deliveryPostcode,
		&row.restaurantStreet,
		&row.restaurantSuburb,
		&row.restaurantState,
		&row.restaurantPostcode,
		&row.deliveryLat,
		&row.deliveryLng,
		&row.restaurantLat,
		&row.restaurantLng,
		&row.orderPrice,
		&row.deliveryFee,
		&row.orderTime,
		&row.pickupTime,
		&row.deliveryTime,
		&row.customerNotes,
		&row.restaurantNotes,
	)
	if err != nil {
		return orderRow{}, err
	}

	row.status, err = order.StatusFromString(status)
	if err != nil {
		return orderRow{}, err
	}

	return row, nil
}

// GetOrderQueryHandler retrieves one order and shapes it for the viewer:
// render hints from the visibility policy, counterparty details redacted
// accordingly. A viewer with no relationship to the order gets a
// not-found error rather than a hint the order exists.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order views.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the redacted order view.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID(),
	).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	row, err := scanOrderRow(rows.Scan)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	viewer := query.Viewer()
	if !canView(row, viewer) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	items, err := h.loadItems(ctx, row.id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return buildOrderView(row, items, viewer), nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID int64) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderLineResponse, 0)
	for rows.Next() {
		var item OrderLineResponse
		if err = rows.Scan(&item.MenuItemID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// canView reports whether the viewer has any relationship to the order:
// owning customer, owning restaurant, assigned driver, or any driver
// while the order is open for claiming.
func canView(row orderRow, viewer kernel.Actor) bool {
	switch viewer.Role() {
	case kernel.RoleCustomer:
		return viewer.ID() == row.customerID
	case kernel.RoleRestaurant:
		return viewer.ID() == row.restaurantID
	case kernel.RoleDriver:
		if row.driverID != nil {
			return *row.driverID == viewer.ID()
		}
		return row.status == order.RestaurantAccepted || row.status == order.ReadyForPickup
	default:
		return false
	}
}

// buildOrderView assembles the response and applies the redaction the
// render hints call for. Owners always see their own side.
func buildOrderView(row orderRow, items []OrderLineResponse, viewer kernel.Actor) GetOrderQueryResponse {
	hints := services.DecideVisibility(row.status, row.driverID, viewer)

	isOwner := (viewer.Is(kernel.RoleCustomer) && viewer.ID() == row.customerID) ||
		(viewer.Is(kernel.RoleRestaurant) && viewer.ID() == row.restaurantID)
	isAssignedDriver := viewer.Is(kernel.RoleDriver) && row.driverID != nil && *row.driverID == viewer.ID()

	resp := GetOrderQueryResponse{
		ID:           row.id,
		Status:       row.status.String(),
		CustomerID:   row.customerID,
		RestaurantID: row.restaurantID,
		OrderPrice:   row.orderPrice,
		DeliveryFee:  row.deliveryFee,
		OrderTime:    row.orderTime,
		PickupTime:   row.pickupTime,
		DeliveryTime: row.deliveryTime,
		Hints:        hints,
	}

	if row.deliveryFee != nil {
		total := row.orderPrice + *row.deliveryFee
		resp.TotalPrice = &total
	}

	if isAssignedDriver || hints.ShowDriverDetails {
		resp.DriverID = row.driverID
	}

	if isOwner {
		resp.Items = items
		resp.CustomerNotes = row.customerNotes
		resp.RestaurantNotes = row.restaurantNotes
	}

	if (viewer.Is(kernel.RoleCustomer) && viewer.ID() == row.customerID) || hints.ShowCustomerDetails {
		resp.DeliveryAddress = &AddressResponse{
			Street:   row.deliveryStreet,
			Suburb:   row.deliverySuburb,
			State:    row.deliveryState,
			Postcode: row.deliveryPostcode,
		}
	}

	if (viewer.Is(kernel.RoleRestaurant) && viewer.ID() == row.restaurantID) || hints.ShowRestaurantDetails {
		resp.RestaurantAddress = &AddressResponse{
			Street:   row.restaurantStreet,
			Suburb:   row.restaurantSuburb,
			State:    row.restaurantState,
			Postcode: row.restaurantPostcode,
		}
	}

	if hints.ShowRouteMap || hints.ShowOverviewMap {
		if row.deliveryLat != nil && row.deliveryLng != nil {
			resp.DeliveryLocation = &PointResponse{Latitude: *row.deliveryLat, Longitude: *row.deliveryLng}
		}
		if row.restaurantLat != nil && row.restaurantLng != nil {
			resp.RestaurantLocation = &PointResponse{Latitude: *row.restaurantLat, Longitude: *row.restaurantLng}
		}
	}

	return resp
}
