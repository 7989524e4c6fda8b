package catalog

import "github.com/shopspring/decimal"

// SampleItems returns the built-in demo catalog used when no seed file is
// configured.
func SampleItems() []Item {
	mk := func(id, name, category, price string, popular bool, desc string) Item {
		return Item{
			ID:          id,
			Name:        name,
			Category:    category,
			Price:       decimal.RequireFromString(price),
			ImageURLs:   []string{"https://images.example.com/" + id + ".jpg"},
			Popular:     popular,
			Description: desc,
		}
	}
	return []Item{
		mk("1", "Trail running shoes", "Clothing and Shoes", "89.99", true, "Lightweight shoes with a grippy outsole for loose terrain."),
		mk("2", "Wool beanie", "Clothing and Shoes", "19.50", false, "Merino knit hat."),
		mk("3", "Rain shell jacket", "Clothing and Shoes", "149.00", true, ""),
		mk("4", "Leather belt", "Clothing and Shoes", "35.00", false, "Full grain leather with a brass buckle."),
		mk("5", "Canvas sneakers", "Clothing and Shoes", "45.00", false, ""),
		mk("6", "Automatic dive watch", "Jewelry and Watches", "420.00", true, "200m water resistance, sapphire crystal."),
		mk("7", "Silver pendant", "Jewelry and Watches", "75.00", false, "Sterling silver on an 18 inch chain."),
		mk("8", "Field watch", "Jewelry and Watches", "129.00", false, ""),
		mk("9", "The Go Programming Language", "Books", "39.99", true, "A thorough introduction to Go."),
		mk("10", "Designing Data-Intensive Applications", "Books", "44.50", true, "Storage, replication and stream processing."),
		mk("11", "Paperback thriller", "Books", "9.99", false, ""),
		mk("12", "Mechanical keyboard", "Computers", "119.00", true, "Hot-swappable switches, tenkeyless layout."),
		mk("13", "27 inch monitor", "Computers", "329.00", false, "1440p IPS panel."),
		mk("14", "USB-C dock", "Computers", "89.00", false, ""),
		mk("15", "Wireless mouse", "Computers", "29.99", false, "Silent clicks, two year battery life."),
		mk("16", "Camping stove", "Sports and Outdoors", "64.00", false, "Compact canister stove."),
		mk("17", "Two person tent", "Sports and Outdoors", "239.00", true, "Freestanding, 1.6kg packed."),
		mk("18", "Trekking poles", "Sports and Outdoors", "79.00", false, ""),
	}
}
