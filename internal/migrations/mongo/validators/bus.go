package validators

import "go.mongodb.org/mongo-driver/bson"

var BusValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"bus_number",
			"bus_name",
			"bus_type",
			"source",
			"destination",
			"departure_time",
			"arrival_time",
			"total_seats",
			"available_seats",
			"booked_seats",
			"seats",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"bus_number": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 20,
			},

			"bus_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"bus_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"ac",
					"non_ac",
					"sleeper",
					"semi_sleeper",
				},
			},

			"source": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"destination": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"departure_time": bson.M{
				"bsonType": "date",
			},

			"arrival_time": bson.M{
				"bsonType": "date",
			},

			"total_seats": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"available_seats": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"booked_seats": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"seats": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{
						"seat_number",
						"seat_type",
						"price",
						"status",
					},
					"properties": bson.M{
						"seat_number": bson.M{
							"bsonType": "string",
							"pattern":  "^[A-Z][0-9]{1,2}$",
						},
						"seat_type": bson.M{
							"bsonType": "string",
							"enum": []string{
								"window",
								"aisle",
							},
						},
						"price": bson.M{
							"bsonType": "number",
							"minimum":  0,
						},
						"status": bson.M{
							"bsonType": "string",
							"enum": []string{
								"available",
								"booked",
								"reserved",
							},
						},
						"passenger_name": bson.M{
							"bsonType": "string",
						},
						"passenger_email": bson.M{
							"bsonType": "string",
						},
						"passenger_phone": bson.M{
							"bsonType": "string",
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
