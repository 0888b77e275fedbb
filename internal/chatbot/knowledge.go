package chatbot

// Greeting is the first bot message of every chat session.
const Greeting = "Hi! 👋 I'm your Theme Park assistant. How can I help you today?"

const defaultFallback = "I'm here to help! You can ask me about:\n\n• Operating hours & tickets\n• Attractions & wait times\n• Zones & experiences\n• Food & dining options\n• Parking & directions\n• Height requirements\n• Express Pass benefits\n\nWhat would you like to know?"

// Order matters: overlapping keywords ("park" vs "ticket", "child" in
// height and safety) resolve to whichever category comes first here.
var defaultCategories = []Category{
	{
		Key:      "hours",
		Keywords: []string{"hours", "open", "close", "time", "when", "operating"},
		Response: "We're open daily from 10:00 AM to 10:00 PM. Some zones may have extended hours on weekends and holidays. Aqua Zone opens at 11:00 AM due to water preparation.",
	},
	{
		Key:      "tickets",
		Keywords: []string{"ticket", "price", "cost", "admission", "entry", "buy", "purchase"},
		Response: "We offer several ticket options:\n\n• Day Pass: RM 150 (Adult) / RM 100 (Child)\n• Express Pass: RM 250 (includes priority queue)\n• Season Pass: RM 799 (unlimited visits)\n• Family Pack: RM 450 (2 adults + 2 children)\n\nYou can purchase tickets online or at the park entrance. Online tickets get 10% off!",
	},
	{
		Key:      "attractions",
		Keywords: []string{"ride", "attraction", "coaster", "best", "popular", "thrill"},
		Response: "Our most popular attractions include:\n\n🎢 Dragon Coaster - Our flagship thrill ride (Height: 120cm+)\n🚀 Space Launch - Launch coaster experience (Height: 140cm+)\n🏰 Enchanted Castle - Family dark ride (All ages)\n🌊 River Rapids - Refreshing water adventure (Height: 100cm+)\n\nWould you like to know wait times or height requirements for any specific ride?",
	},
	{
		Key:      "zones",
		Keywords: []string{"zone", "area", "land", "section", "themed"},
		Response: "We have 5 amazing themed zones:\n\n✨ Fantasy Kingdom - Magical experiences for all ages\n🚀 Future World - Futuristic tech & space adventures\n💧 Aqua Zone - Water rides & splash areas\n🎠 Kids Paradise - Perfect for little ones\n🏔️ Adventure Valley - Extreme thrills for brave hearts\n\nEach zone has unique attractions, dining, and shopping!",
	},
	{
		Key:      "waitTimes",
		Keywords: []string{"wait", "queue", "line", "busy", "crowded"},
		Response: "Current approximate wait times:\n\n• Dragon Coaster: ~25 mins\n• Space Launch: ~30 mins\n• River Rapids: ~20 mins\n• Enchanted Castle: ~15 mins\n\nTip: Visit popular rides before 11 AM or after 6 PM for shorter waits. Consider our Express Pass for priority access!",
	},
	{
		Key:      "food",
		Keywords: []string{"food", "eat", "restaurant", "dining", "hungry", "lunch", "dinner", "snack"},
		Response: "We have 12 dining locations across the park:\n\n🍔 Quick Bites - Burgers & sandwiches (Fantasy Kingdom)\n🍜 Noodle House - Asian cuisine (Future World)\n🍕 Pizza Planet - Family favorite (Kids Paradise)\n🥗 Fresh Garden - Healthy options (Aqua Zone)\n\nLook for the dining symbol on your park map. Most restaurants accept our Theme Park Card for cashless payment!",
	},
	{
		Key:      "parking",
		Keywords: []string{"park", "parking", "car", "drive"},
		Response: "Parking information:\n\n🅿️ Standard Parking: RM 20/day\n⭐ Premium Parking: RM 50/day (closer to entrance)\n♿ Accessible Parking: Free with valid permit\n\nParking opens 30 minutes before park opening. Keep your parking ticket - you'll need it to exit!",
	},
	{
		Key:      "weather",
		Keywords: []string{"rain", "weather", "umbrella", "bring", "wear", "prepare"},
		Response: "Tips for your visit:\n\n☀️ Sunny days: Bring sunscreen, hat, and sunglasses\n🌧️ Rainy days: Most rides operate (bring a poncho!)\n👟 Wear comfortable walking shoes\n👙 Bring swimwear for Aqua Zone\n📱 Download our app for live updates\n\nLockers are available throughout the park (RM 15-25/day).",
	},
	{
		Key:      "height",
		Keywords: []string{"height", "tall", "cm", "requirement", "child", "kid"},
		Response: "Height requirements for popular rides:\n\n• Dragon Coaster: 120cm minimum\n• Space Launch: 140cm minimum\n• Thunder Mountain: 110cm minimum\n• River Rapids: 100cm minimum\n• Kiddie rides: No minimum\n• Enchanted Castle: No minimum\n\nHeight measurement stations are at each ride entrance. Children under requirements can enjoy Kids Paradise!",
	},
	{
		Key:      "express",
		Keywords: []string{"express", "skip", "fast", "priority", "vip"},
		Response: "Express Pass Benefits:\n\n⚡ Skip the regular queue on 10+ major attractions\n⚡ Priority seating at shows\n⚡ 1 re-ride per attraction\n⚡ Special viewing areas for parades\n\nPrice: RM 100/person (add to any ticket)\n\nLimited daily passes available - book online to guarantee availability!",
	},
	{
		Key:      "safety",
		Keywords: []string{"safe", "security", "lost", "child", "emergency", "first aid"},
		Response: "Safety & Services:\n\n🏥 First Aid stations in each zone\n👮 Security available 24/7\n📍 Lost Child Center at Main Entrance\n📞 Emergency: Dial 123 from any park phone\n♿ Wheelchair & stroller rental available\n\nAll rides are inspected daily. Our staff are trained to assist with any emergency.",
	},
	{
		Key:      "birthday",
		Keywords: []string{"birthday", "party", "celebration", "event", "special"},
		Response: "Make birthdays magical! 🎂\n\n🎈 Birthday Package: RM 299/child\n• Dedicated party host\n• Character meet & greet\n• Special cake & decorations\n• Party favor bags\n• Priority ride access\n\nBook 2 weeks in advance. Groups of 10+ get 15% off admission!",
	},
	{
		Key:      "contact",
		Keywords: []string{"contact", "call", "email", "phone", "help", "support"},
		Response: "Contact Us:\n\n📞 Phone: +60 3-1234 5678\n📧 Email: help@themepark.my\n💬 Live Chat: Available 9 AM - 9 PM\n📍 Address: Theme Park Drive, Kuala Lumpur\n\nFor fastest response, try our live chat!",
	},
}

// DefaultKnowledgeBase returns the built-in park knowledge base.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := NewKnowledgeBase(defaultCategories, defaultFallback)
	if err != nil {
		panic(err)
	}
	return kb
}

// QuickAction is a canned question offered as a one-tap suggestion.
type QuickAction struct {
	Label string
	Query string
}

// QuickActions lists the suggestions shown when a chat opens.
func QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Park Hours", Query: "What are the operating hours?"},
		{Label: "Ticket Prices", Query: "How much are tickets?"},
		{Label: "Attractions", Query: "What are the best attractions?"},
		{Label: "Help", Query: "What can you help me with?"},
	}
}
