package sale

// NumberPrefix prefixes sale receipt numbers (SALE-2026-00001).
const NumberPrefix = "SALE"

// RecentLimit is how many sales the dashboard lists.
const RecentLimit = 5
