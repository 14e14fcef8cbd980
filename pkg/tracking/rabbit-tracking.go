package tracking

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-browse/pkg/types"
)

const trackingTopic = "browse_tracking"

type RabbitTracking struct {
	country    string
	sessionId  string
	connection *amqp.Connection
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		country:   country,
		sessionId: uuid.NewString(),
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return defineTopic(ch, "global", trackingTopic)
}

func defineTopic(ch *amqp.Channel, prefix, topic string) error {
	name := fmt.Sprintf("%s_%s", prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	_, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	)
	return err
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := t.connection.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := fmt.Sprintf("%s_%s", "global", trackingTopic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Event     uint16 `json:"event"`
}

type SearchEvent struct {
	*BaseEvent
	CategoryId string `json:"category_id,omitempty"`
	Sort       string `json:"sort,omitempty"`
	Total      int    `json:"total"`
}

type FilterEvent struct {
	*BaseEvent
	MinPrice float64             `json:"min_price,omitempty"`
	MaxPrice float64             `json:"max_price,omitempty"`
	Options  map[string][]string `json:"options,omitempty"`
}

type LoadMoreEvent struct {
	*BaseEvent
	Count int `json:"count"`
}

func (t *RabbitTracking) TrackSearch(categoryId string, sort types.SortKey, total int) {
	err := t.send(SearchEvent{
		BaseEvent:  &BaseEvent{Event: 1, SessionId: t.sessionId, Country: t.country},
		CategoryId: categoryId,
		Sort:       string(sort),
		Total:      total,
	})
	if err != nil {
		log.Println("Error sending search event: ", err)
	}
}

func (t *RabbitTracking) TrackFilter(criteria types.FilterCriteria) {
	err := t.send(FilterEvent{
		BaseEvent: &BaseEvent{Event: 2, SessionId: t.sessionId, Country: t.country},
		MinPrice:  criteria.PriceRange.Min,
		MaxPrice:  criteria.PriceRange.Max,
		Options:   criteria.SelectedOptions,
	})
	if err != nil {
		log.Println("Error sending filter event: ", err)
	}
}

func (t *RabbitTracking) TrackLoadMore(count int) {
	err := t.send(LoadMoreEvent{
		BaseEvent: &BaseEvent{Event: 3, SessionId: t.sessionId, Country: t.country},
		Count:     count,
	})
	if err != nil {
		log.Println("Error sending load more event: ", err)
	}
}
