package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
)

// BusClient is a typed HTTP client for the bus booking service. Integration
// tests drive the service through it.
type BusClient struct {
	httpClient *HttpClient
}

func NewBusClient(baseUrl string) *BusClient {
	return &BusClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

type Metadata struct {
	TotalCount int64
	Limit      int
	Offset     int64
}

func (c *BusClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/buses", body)
}

func (c *BusClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/buses", rawBody)
}

func (c *BusClient) GetAll() (*Response, error) {
	return c.httpClient.GET("/buses")
}

func (c *BusClient) GetPage(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/buses?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

// GetPageRaw sends limit and offset verbatim, so tests can probe how the
// service treats values that do not parse as numbers.
func (c *BusClient) GetPageRaw(limit, offset string) (*Response, error) {
	q := url.Values{}
	q.Set("limit", limit)
	q.Set("offset", offset)
	return c.httpClient.GET("/buses?" + q.Encode())
}

func (c *BusClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/buses/" + url.PathEscape(id))
}

func (c *BusClient) Update(id string, body any) (*Response, error) {
	return c.httpClient.PUT("/buses/"+url.PathEscape(id), body)
}

func (c *BusClient) UpdateRaw(id string, rawBody []byte) (*Response, error) {
	return c.httpClient.PUTRaw("/buses/"+url.PathEscape(id), rawBody)
}

func (c *BusClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/buses/" + url.PathEscape(id))
}

func (c *BusClient) Search(source, destination, travelDate string) (*Response, error) {
	q := url.Values{}
	q.Set("source", source)
	q.Set("destination", destination)
	q.Set("travel_date", travelDate)

	return c.httpClient.GET("/buses/search?" + q.Encode())
}

func (c *BusClient) BookSeats(busID string, body any) (*Response, error) {
	return c.httpClient.POST("/buses/"+url.PathEscape(busID)+"/book", body)
}

func (c *BusClient) BookSeatsRaw(busID string, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/buses/"+url.PathEscape(busID)+"/book", rawBody)
}

func (c *BusClient) BookSeatsWithHeaders(busID string, body any, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/buses/"+url.PathEscape(busID)+"/book", body, headers)
}

func (c *BusClient) Ticket(busID, seatNumber string) (*Response, error) {
	q := url.Values{}
	q.Set("seat_number", seatNumber)
	return c.httpClient.GET("/buses/" + url.PathEscape(busID) + "/ticket?" + q.Encode())
}

func (c *BusClient) Health() (*Response, error) {
	return c.httpClient.GET("/health")
}

func (c *BusClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

func (c *BusClient) DecodeBus(resp *Response) (*model.Bus, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode bus wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var bus model.Bus
	if err := json.Unmarshal(wrapper.Data, &bus); err != nil {
		return nil, fmt.Errorf("could not decode bus json:\n%+v\n%s", resp.ToString(), err)
	}

	return &bus, nil
}

func (c *BusClient) DecodeBuses(resp *Response) ([]*model.Bus, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var buses []*model.Bus
	if err := json.Unmarshal(wrapper.Data, &buses); err != nil {
		return nil, nil, fmt.Errorf("could not decode bus list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return buses, metadata, nil
}

func (c *BusClient) DecodeBusList(resp *Response) ([]*model.Bus, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode list wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var buses []*model.Bus
	if err := json.Unmarshal(wrapper.Data, &buses); err != nil {
		return nil, fmt.Errorf("could not decode bus list:\n%+v\n%s", resp.ToString(), err)
	}

	return buses, nil
}

func (c *BusClient) DecodeConfirmation(resp *Response) (*model.BookingConfirmation, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode confirmation wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var confirmation model.BookingConfirmation
	if err := json.Unmarshal(wrapper.Data, &confirmation); err != nil {
		return nil, fmt.Errorf("could not decode confirmation json:\n%+v\n%s", resp.ToString(), err)
	}

	return &confirmation, nil
}
