// Package event delivers workflow change notifications.
//
// The workflow store publishes an Event after every command that changes
// state. Collaborators such as a canvas renderer, a properties panel, or a
// file watcher subscribe to the types they care about instead of polling.
//
// # Basic Usage
//
//	bus := event.NewBus(event.DefaultBusConfig)
//	defer bus.Close()
//
//	sub, err := bus.Subscribe([]string{event.NodeAdded, event.NodeRemoved},
//		event.HandlerFunc(func(ctx context.Context, evt event.Event) error {
//			fmt.Println(evt.Type, evt.Subject)
//			return nil
//		}))
//	if err != nil {
//		return err
//	}
//	defer sub.Unsubscribe()
//
// A type ending in ".*" subscribes to a whole category, so a canvas
// renderer can follow every node and edge change with
// []string{"node.*", "edge.*"}.
//
// # Delivery
//
// Each subscription has a buffered channel and a goroutine. Publish blocks
// while a subscriber buffer is full unless BusConfig.NonBlocking is set,
// in which case the event is dropped and BusConfig.OnDrop is called.
// Handler errors go to BusConfig.OnError and never reach the publisher.
package event
