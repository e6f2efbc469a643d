// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The id is generated by the database on insert; status is stored as its
// wire string so the table reads naturally and the claim update can filter
// on it directly.
type OrderDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID   int64  `gorm:"index"`
	RestaurantID int64  `gorm:"index"`
	DriverID     *int64 `gorm:"index"`
	Status       string `gorm:"type:varchar(32);index"`

	DeliveryAddress   AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	RestaurantAddress AddressDTO `gorm:"embedded;embeddedPrefix:restaurant_"`

	// Resolved coordinates; NULL while geocoding is degraded.
	DeliveryLat   *float64
	DeliveryLng   *float64
	RestaurantLat *float64
	RestaurantLng *float64

	OrderPrice  float64
	DeliveryFee *float64

	OrderTime    time.Time
	PickupTime   *time.Time
	DeliveryTime *time.Time

	CustomerNotes   string
	RestaurantNotes string

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded street address within the order table.
type AddressDTO struct {
	Street   string
	Suburb   string
	State    string `gorm:"type:varchar(3)"`
	Postcode string `gorm:"type:varchar(4)"`
}

// OrderItemDTO represents one order line row.
type OrderItemDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	OrderID    int64 `gorm:"index"`
	MenuItemID int64
	Quantity   int
	UnitPrice  float64
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                o.ID(),
		CustomerID:        o.CustomerID(),
		RestaurantID:      o.RestaurantID(),
		DriverID:          o.Driver(),
		Status:            o.Status().String(),
		DeliveryAddress:   addressToDTO(o.DeliveryAddress()),
		RestaurantAddress: addressToDTO(o.RestaurantAddress()),
		OrderPrice:        o.OrderPrice(),
		OrderTime:         o.OrderTime(),
		PickupTime:        o.PickupTime(),
		DeliveryTime:      o.DeliveryTime(),
		CustomerNotes:     o.CustomerNotes(),
		RestaurantNotes:   o.RestaurantNotes(),
	}

	if fee, known := o.DeliveryFee(); known {
		dto.DeliveryFee = &fee
	}

	if loc := o.DeliveryLocation(); loc != nil {
		lat, lng := loc.Point().Latitude(), loc.Point().Longitude()
		dto.DeliveryLat, dto.DeliveryLng = &lat, &lng
	}
	if loc := o.RestaurantLocation(); loc != nil {
		lat, lng := loc.Point().Latitude(), loc.Point().Longitude()
		dto.RestaurantLat, dto.RestaurantLng = &lat, &lng
	}

	for _, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:    o.ID(),
			MenuItemID: item.MenuItemID(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return dto
}

func addressToDTO(address kernel.Address) AddressDTO {
	return AddressDTO{
		Street:   address.Street(),
		Suburb:   address.Suburb(),
		State:    address.State(),
		Postcode: address.Postcode(),
	}
}

func addressFromDTO(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.Suburb, dto.State, dto.Postcode)
}

// locationFromDTO rebuilds a resolved location from stored coordinates.
// The advisory display fields come from the matching address; only the
// coordinates are persisted.
func locationFromDTO(lat, lng *float64, address kernel.Address) (*kernel.Location, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(point, address.Suburb(), address.State(), address.Postcode())
	if err != nil {
		return nil, err
	}

	return &location, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, driver assignment
// and timestamps using RestoreOrder, which revalidates consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryAddress, err := addressFromDTO(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	restaurantAddress, err := addressFromDTO(dto.RestaurantAddress)
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := locationFromDTO(dto.DeliveryLat, dto.DeliveryLng, deliveryAddress)
	if err != nil {
		return nil, err
	}

	restaurantLocation, err := locationFromDTO(dto.RestaurantLat, dto.RestaurantLng, restaurantAddress)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.MenuItemID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		dto.ID,
		dto.CustomerID,
		dto.RestaurantID,
		dto.DriverID,
		status,
		deliveryAddress,
		restaurantAddress,
		deliveryLocation,
		restaurantLocation,
		dto.DeliveryFee,
		items,
		dto.OrderTime,
		dto.PickupTime,
		dto.DeliveryTime,
		dto.CustomerNotes,
		dto.RestaurantNotes,
	)
}
