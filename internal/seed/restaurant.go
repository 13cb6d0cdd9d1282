package seed

import "github.com/MuhamadAgungGumelar/chatherine-be/internal/models"

var restaurant = models.Customer{
	Name:            "Bella Vista Restaurant",
	Email:           "info@bellavista.com",
	Phone:           "+1234567890",
	BusinessName:    "Bella Vista",
	BusinessType:    "Fine Dining Restaurant",
	BusinessAddress: "123 Gourmet Street, Downtown District",
}

type fact struct {
	category, title, content string
}

var restaurantFacts = []fact{
	{"general", "Business Description", "Bella Vista is an upscale fine dining restaurant specializing in contemporary Italian cuisine with a modern twist. We offer an elegant atmosphere perfect for romantic dinners, business meetings, and special celebrations."},
	{"location", "Address", "123 Gourmet Street, Downtown District. Free parking available in the rear. Accessible by public transit (Metro Line 2, Gourmet Station)."},
	{"contact", "Phone", "+1 (555) 123-4567"},
	{"general", "Cuisine Style", "Contemporary Italian cuisine with farm-to-table ingredients. Specializing in handmade pasta, wood-fired pizzas, and premium steaks."},
	{"general", "Ambiance", "Elegant and sophisticated dining room with soft lighting, white tablecloths, and contemporary Italian artwork. Outdoor patio seating available seasonally."},
	{"general", "Price Range", "$$ - $$$ (Moderate to Expensive). Appetizers: $12-18, Main courses: $24-45, Desserts: $8-14"},
	{"general", "Special Diets", "We offer extensive vegetarian and vegan options. Gluten-free pasta available upon request. Please inform your server of any dietary restrictions."},
	{"general", "Reservations", "Reservations recommended, especially for weekend dining. We accept reservations up to 30 days in advance. Same-day reservations accepted based on availability."},
	{"services", "Private Events", "Private dining room available for parties of 12-25 guests. Custom menus and event planning services available. Contact us for pricing and availability."},
	{"services", "Wine Selection", "Extensive wine list featuring over 200 selections from Italy and California. Wine pairing available for all menu items. Sommelier on staff."},
	{"staff", "Staff: Chef Marco Rossi", "Role: Executive Chef\nExperience: 15 years in fine dining Italian cuisine\nSpecialty: Traditional pasta techniques and modern interpretations\nAvailability: Tuesday - Saturday evenings"},
	{"staff", "Staff: Isabella Martinez", "Role: Head Sommelier\nExperience: Certified sommelier with 10 years experience\nSpecialty: Italian and California wine pairings\nAvailability: Wednesday - Sunday"},
	{"staff", "Staff: Antonio Bianchi", "Role: Maître d'\nExperience: 12 years in luxury hospitality\nSpecialty: Guest experience and private event coordination\nAvailability: All operating hours"},
}

type offering struct {
	category, name, description string
	price                       float64
	minutes                     int
}

var menu = []offering{
	{"Appetizers", "Bruschetta Trio", "Classic tomato, mushroom, and olive tapenade on toasted ciabatta", 14, 10},
	{"Appetizers", "Calamari Fritti", "Crispy squid rings with lemon aioli and marinara sauce", 16, 12},
	{"Appetizers", "Antipasto Platter", "Selection of cured meats, cheeses, olives, and marinated vegetables", 18, 15},
	{"Pasta", "Fettuccine Alfredo", "House-made fettuccine with creamy parmesan sauce and black truffle", 24, 20},
	{"Pasta", "Spaghetti Carbonara", "Traditional Roman-style with pancetta, eggs, and pecorino romano", 22, 18},
	{"Pasta", "Lobster Ravioli", "House-made ravioli filled with lobster in a saffron cream sauce", 32, 25},
	{"Main Courses", "Filet Mignon", "8oz grass-fed beef with roasted potatoes and seasonal vegetables", 45, 25},
	{"Main Courses", "Chicken Parmigiana", "Breaded chicken breast with marinara sauce and melted mozzarella", 28, 22},
	{"Main Courses", "Veal Saltimbocca", "Veal cutlets with prosciutto and sage in white wine sauce", 38, 23},
	{"Pizza", "Margherita Pizza", "San Marzano tomatoes, fresh mozzarella, basil on wood-fired crust", 18, 15},
	{"Pizza", "Quattro Stagioni", "Artichokes, mushrooms, ham, olives on wood-fired crust", 22, 16},
	{"Pizza", "Truffle Pizza", "Black truffle, mozzarella, wild mushrooms, truffle oil", 28, 18},
	{"Desserts", "Tiramisu", "Classic Italian dessert with coffee-soaked ladyfingers and mascarpone", 10, 5},
	{"Desserts", "Panna Cotta", "Vanilla bean panna cotta with mixed berry compote", 9, 5},
	{"Desserts", "Chocolate Lava Cake", "Warm chocolate cake with molten center and vanilla gelato", 12, 8},
	{"Beverages", "House Wine", "Selection of red and white wines by the glass", 12, 2},
	{"Beverages", "Craft Cocktails", "Signature Italian-inspired cocktails", 14, 5},
	{"Beverages", "Espresso", "Traditional Italian espresso", 4, 2},
}

// Monday first.
var restaurantHours = [7][2]string{
	{"11:00", "22:00"},
	{"11:00", "22:00"},
	{"11:00", "22:00"},
	{"11:00", "22:00"},
	{"11:00", "23:00"},
	{"17:00", "23:00"},
	{"17:00", "21:00"},
}
