package domain

const seededAt = "2025-01-01T00:00:00.000Z"

// DefaultCategories is the category set seeded on first run. The ids are
// stable keys referenced from transactions.
var DefaultCategories = []Category{
	{ID: "food", Name: "Food", Type: "expense", Color: "#FF7043", Icon: "food", CreatedAt: seededAt},
	{ID: "transport", Name: "Transport", Type: "expense", Color: "#29B6F6", Icon: "car", CreatedAt: seededAt},
	{ID: "bills", Name: "Bills", Type: "expense", Color: "#AB47BC", Icon: "file-invoice", CreatedAt: seededAt},
	{ID: "shopping", Name: "Shopping", Type: "expense", Color: "#FFA726", Icon: "shopping-bag", CreatedAt: seededAt},
	{ID: "medical", Name: "Medical", Type: "expense", Color: "#66BB6A", Icon: "medical", CreatedAt: seededAt},
	{ID: "salary", Name: "Salary", Type: "income", Color: "#66BB6A", Icon: "wallet", CreatedAt: seededAt},
	{ID: "bonus", Name: "Bonus", Type: "income", Color: "#26A69A", Icon: "gift", CreatedAt: seededAt},
	{ID: "uncategorized", Name: "Uncategorized", Type: "both", Color: "#BDBDBD", Icon: "question", CreatedAt: seededAt},
}
