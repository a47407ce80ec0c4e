package output

// DefaultAssumptions lists the modeling assumptions printed under every detailed report
var DefaultAssumptions = []string{
	"City and province figures are sample estimates, not live market data",
	"Mortgage payments use monthly compounding of the nominal annual rate",
	"Affordability limits: GDS 32%, TDS 40%, rent 30% of gross monthly income",
	"Retirement costs grow with inflation and are funded until age 90",
	"Taxes use a flat provincial effective rate",
}
