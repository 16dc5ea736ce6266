// Package graphql holds the public API schema and its resolvers.
package graphql

// Schema is the GraphQL schema served by the API. Monetary fields are in
// the smallest currency unit; checkIn/checkOut are inclusive ISO dates.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	listing(id: ID!): Listing!
	listings(location: String, limit: Int!, page: Int!): Listings!
	user(id: ID!): User!
}

type Mutation {
	createBooking(input: CreateBookingInput!): Booking!
	hostListing(input: HostListingInput!): Listing!
	connectWallet(input: ConnectWalletInput!): User!
	disconnectWallet: User!
}

enum ListingType {
	APARTMENT
	HOUSE
}

type Listing {
	id: ID!
	title: String!
	description: String!
	image: String!
	host: User!
	type: ListingType!
	address: String!
	city: String!
	admin: String!
	country: String!
	price: Int!
	numOfGuests: Int!
	bookings(limit: Int!, page: Int!): Bookings
	bookingsIndex: String!
}

type Listings {
	total: Int!
	result: [Listing!]!
}

type Booking {
	id: ID!
	listing: Listing!
	tenant: User!
	checkIn: String!
	checkOut: String!
	totalPrice: Int!
}

type Bookings {
	total: Int!
	result: [Booking!]!
}

type User {
	id: ID!
	name: String!
	avatar: String!
	contact: String!
	hasWallet: Boolean!
	income: Int
	bookings(limit: Int!, page: Int!): Bookings
	listings(limit: Int!, page: Int!): Listings!
}

input CreateBookingInput {
	id: ID!
	source: String!
	checkIn: String!
	checkOut: String!
}

input HostListingInput {
	title: String!
	description: String!
	image: String!
	type: ListingType!
	address: String!
	country: String!
	admin: String!
	city: String!
	price: Int!
	numOfGuests: Int!
}

input ConnectWalletInput {
	code: String!
}
`
