package carrier

// serviceCatalogue maps DHL Express product codes to the carrier-provided
// names, used as rate labels when no custom name is configured.
var serviceCatalogue = map[string]string{
	"0": "DHL Express Worldwide",
	"1": "DHL Express Domestic",
	"2": "DHL Express 9:00",
	"3": "DHL Express 10:30",
	"4": "DHL Express 12:00",
	"5": "DHL Express Easy",
	"7": "DHL Economy Select",
	"8": "DHL Express 12:00",
	"9": "DHL Express Envelope",
	"B": "DHL Express Breakbulk",
	"C": "DHL Express Medical Express",
	"D": "DHL Express Express 9:00",
	"E": "DHL Express Express 10:30",
	"F": "DHL Express Freight Worldwide",
	"G": "DHL Express Domestic Economy Select",
	"H": "DHL Express Economy Select",
	"I": "DHL Express Break Bulk Economy",
	"J": "DHL Express Jumbo Box",
	"K": "DHL Express Express 9:00",
	"L": "DHL Express Express 10:30",
	"M": "DHL Express Express 12:00",
	"N": "DHL Express Domestic Express",
	"O": "DHL Express Others",
	"P": "DHL Express Worldwide",
	"Q": "DHL Express Medical Express",
	"R": "DHL Express GlobalMail Business",
	"S": "DHL Express Same Day",
	"T": "DHL Express Express 12:00",
	"U": "DHL Express Express Worldwide",
	"V": "DHL Express Europack",
	"W": "DHL Express Economy Select",
	"X": "DHL Express Express Envelope",
	"Y": "DHL Express Express 12:00",
	"Z": "DHL Express Destination Charges",
}

// ServiceName returns the carrier-provided name for a service code, or the
// code itself when unknown.
func ServiceName(code string) string {
	if name, ok := serviceCatalogue[code]; ok {
		return name
	}
	return code
}
