package cmd

import (
	"cafeteria/internal/adapters/out/memory"
	"cafeteria/internal/core/domain/model/kernel"
)

// seedMenu fills an in-memory store with a small menu so the memory
// backend is usable without a database.
func seedMenu(store *memory.Store) {
	menu := []struct {
		name  string
		price string
		stock int
	}{
		{"Espresso", "2.50", 200},
		{"Cafe con leche", "3.00", 200},
		{"Medialuna", "1.20", 120},
		{"Tostado de jamon y queso", "5.50", 60},
		{"Alfajor", "1.80", 80},
	}

	for i, item := range menu {
		price, err := kernel.MoneyFromString(item.price)
		if err != nil {
			panic(err)
		}
		store.PutProduct(memory.Product{
			ID:     kernel.ProductID(i + 1),
			Name:   item.name,
			Price:  price,
			Stock:  item.stock,
			Active: true,
		})
	}
}
