package planner

// primerMessage is one turn of the fixed exemplar exchange seeded into every
// new session.
type primerMessage struct {
	Role string
	Text string
}

// sessionPrimer biases the model toward emitting exactly the JSON schema the
// parser expects. It is configuration data: the exchange never changes at
// runtime and is prepended to each session's history before the first real
// prompt is sent.
var sessionPrimer = []primerMessage{
	{Role: roleUser, Text: primerPrompt},
	{Role: roleModel, Text: primerReply},
}

const primerPrompt = "Create an optimal trip itinerary based on the specified location, duration, budget, and number of persons. " +
	"Generate Travel Plan for Location: {Bhopal} for {4} days with no of People or group: {4-5} with Budget: {Luxury}; " +
	"give me list of hotels with hotel name, description, address, rating, price, location in map, coordinates, image url; " +
	"also for the same create the itinerary for {4} days, suggest places, give name, details, pricing, timings, place images urls, location (coordinate or in map); " +
	"Remember all have to cover in the {Luxury} level budget. " +
	"Important: give the result in JSON Format"

const primerReply = "```json\n" + `{
  "tripDetails": {
    "location": "Bhopal",
    "startDate": "2024-12-11",
    "endDate": "2024-12-14",
    "duration": "4 days",
    "groupSize": "4-5",
    "budgetLevel": "Luxury"
  },
  "hotels": [
    {
      "hotelName": "Jehan Numa Palace Hotel",
      "description": "A heritage hotel known for its majestic architecture, impeccable service, and lush green surroundings.",
      "address": "157, Shamla Hills, Bhopal, Madhya Pradesh 462013",
      "rating": 4.6,
      "price": "₹12,000 - ₹25,000 per night",
      "location": "https://maps.app.goo.gl/14oFkQv7aB7rYV3T7",
      "coordinates": {
        "latitude": 23.2478,
        "longitude": 77.3779
      },
      "imageUrl": "https://dynamic-media-cdn.tripadvisor.com/media/photo-o/1a/e5/63/22/jehan-numa-palace-bhopal.jpg"
    },
    {
      "hotelName": "Noor-Us-Sabah Palace",
      "description": "A heritage property offering a regal experience with opulent interiors and panoramic views of the Upper Lake.",
      "address": "VIP Rd, Kohe Fiza, Bhopal, Madhya Pradesh 462001",
      "rating": 4.4,
      "price": "₹10,000 - ₹20,000 per night",
      "location": "https://maps.app.goo.gl/d3f6H3bM3c3z9mYm9",
      "coordinates": {
        "latitude": 23.2606,
        "longitude": 77.3908
      },
      "imageUrl": "https://dynamic-media-cdn.tripadvisor.com/media/photo-o/15/e7/5e/b4/noor-us-sabah-palace.jpg"
    }
  ],
  "itinerary": {
    "duration": "4 Days",
    "days": [
      {
        "day": 1,
        "theme": "Historical Exploration",
        "places": [
          {
            "name": "Bhojpur Temple",
            "details": "An unfinished Hindu temple housing a massive Shiva Lingam. A masterpiece of 11th-century architecture.",
            "pricing": "Free entry",
            "timings": "7:00 AM - 7:00 PM",
            "imageUrl": "https://upload.wikimedia.org/wikipedia/commons/b/bc/Bhojpur_Temple_Bhopal.jpg",
            "location": "https://maps.app.goo.gl/q9T9K22fE5vD1z3b8",
            "coordinates": {
              "latitude": 23.0782,
              "longitude": 77.6299
            }
          },
          {
            "name": "Sanchi Stupa",
            "details": "A UNESCO World Heritage Site and one of the oldest stone structures in India.",
            "pricing": "₹60 for Indians, ₹800 for foreigners",
            "timings": "8:30 AM - 5:30 PM",
            "imageUrl": "https://upload.wikimedia.org/wikipedia/commons/thumb/7/7b/Sanchi_Stupa.jpg/1200px-Sanchi_Stupa.jpg",
            "location": "https://maps.app.goo.gl/iH15j9v4g646jTz87",
            "coordinates": {
              "latitude": 23.4828,
              "longitude": 77.7442
            }
          }
        ],
        "activities": [
          "Private luxury car transport to and from Sanchi.",
          "Guided tour of the Stupa complex by a professional historian."
        ]
      },
      {
        "day": 2,
        "theme": "Lakes and City Exploration",
        "places": [
          {
            "name": "Upper Lake (Bada Talab)",
            "details": "One of the largest artificial lakes in India. Enjoy a serene boat ride or a walk along the promenade.",
            "pricing": "Boat ride ₹200-₹500",
            "timings": "Open 24 hours; boat rides are available throughout the day",
            "imageUrl": "https://upload.wikimedia.org/wikipedia/commons/1/1a/Upper_Lake_Bhopal.jpg",
            "location": "https://maps.app.goo.gl/38bXGk7d2G4QWJ8r9",
            "coordinates": {
              "latitude": 23.2565,
              "longitude": 77.3660
            }
          }
        ],
        "activities": [
          "Luxury yacht ride on the Upper Lake at sunset with high tea and snacks."
        ]
      }
    ]
  }
}` + "\n```"
