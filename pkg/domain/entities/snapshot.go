package entities

// Snapshot is an immutable, fully-consistent view of all entity collections
// at one instant. Readers must not mutate it; the store replaces the whole
// value on every command.
type Snapshot struct {
	Users       []User
	Suppliers   []Supplier
	Items       []Item
	Serials     []Serial
	Assignments []Assignment
	Quotes      []Quote
	Orders      []Order
	Activity    []ActivityEntry
	Alerts      []Alert
}

// The Find helpers below are linear scans. That is fine at the tens to low
// thousands of rows this store holds; hot paths use a Lookup instead.

// FindUser returns the user with the given id
func (s Snapshot) FindUser(id UserID) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindSupplier returns the supplier with the given id
func (s Snapshot) FindSupplier(id SupplierID) (Supplier, bool) {
	for _, sup := range s.Suppliers {
		if sup.ID == id {
			return sup, true
		}
	}
	return Supplier{}, false
}

// FindItem returns the catalog item with the given id
func (s Snapshot) FindItem(id ItemID) (Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// FindSerial returns the serialized unit with the given id
func (s Snapshot) FindSerial(id SerialID) (Serial, bool) {
	for _, serial := range s.Serials {
		if serial.ID == id {
			return serial, true
		}
	}
	return Serial{}, false
}

// FindAssignment returns the assignment with the given id
func (s Snapshot) FindAssignment(id AssignmentID) (Assignment, bool) {
	for _, a := range s.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

// FindQuote returns the quote with the given id
func (s Snapshot) FindQuote(id QuoteID) (Quote, bool) {
	for _, q := range s.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// FindOrder returns the purchase order with the given id
func (s Snapshot) FindOrder(id OrderID) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}
