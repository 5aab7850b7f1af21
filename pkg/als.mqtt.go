/* Asset Lifecycle Server (ALS) is a component of the Datacan Data2Desk (D2D) Platform.
License:

	[PROPER LEGALESE HERE...]

	INTERIM LICENSE DESCRIPTION:
	In spirit, this license:
	1. Allows <Third Party> to use, modify, and / or distributre this software in perpetuity so long as <Third Party> understands:
		a. The software is porvided as is without guarantee of additional support from DataCan in any form.
		b. The software is porvided as is without guarantee of exclusivity.

	2. Prohibits <Third Party> from taking any action which might interfere with DataCan's right to use, modify and / or distributre this software in perpetuity.
*/

package pkg

import (
	"encoding/json"
	"fmt"
	"time"

	phao "github.com/eclipse/paho.mqtt.golang"
)

type ALSMQTTClient struct {
	MQTTUser     string
	MQTTPW       string
	MQTTClientID string
	phao.ClientOptions
	phao.Client
}

type MQTTClientsMap map[string]ALSMQTTClient

var MQTTSyncClients = make(MQTTClientsMap)

func (alsm *ALSMQTTClient) ALSMQTTClient_Connect() (err error) {

	alsm.ClientOptions = *phao.NewClientOptions()
	alsm.AddBroker(ALS_CFG.MQTTBroker)
	alsm.SetUsername(alsm.MQTTUser)
	alsm.SetPassword(alsm.MQTTPW)
	alsm.SetClientID(alsm.MQTTClientID)
	alsm.SetKeepAlive(time.Second * 60)
	alsm.SetAutoReconnect(true)
	alsm.SetMaxReconnectInterval(time.Second * 60)
	alsm.OnConnect = func(c phao.Client) {
		fmt.Printf(
			"\nALSMQTTClient: %s connected...\n", alsm.MQTTClientID,
		)
	}
	alsm.OnConnectionLost = func(c phao.Client, err error) {
		fmt.Printf(
			"\nALSMQTTClient: %s connection lost...\n%s\n", alsm.MQTTClientID,
			err.Error(),
		)
	}
	alsm.DefaultPublishHandler = func(c phao.Client, msg phao.Message) {
		fmt.Printf(
			"\nALSMQTTClient: %s\nDefault Handler:\nTopic: %s:\nMessage:\n%s\n\n",
			alsm.MQTTClientID,
			msg.Topic(),
			msg.Payload(),
		)
	}

	c := phao.NewClient(&alsm.ClientOptions)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		fmt.Printf("\nALSMQTTClient: %s connection failed...\n%s\n", alsm.MQTTClientID, token.Error())
		return token.Error()
	}

	alsm.Client = c

	return err
}
func (alsm *ALSMQTTClient) ALSMQTTClient_Disconnect() (err error) {
	alsm.Client.Disconnect(0)
	return err
}

type MQTTSubscription struct {
	Topic   string
	Qos     byte
	Handler phao.MessageHandler
}

func (sub MQTTSubscription) Sub(client ALSMQTTClient) {

	token := client.Subscribe(sub.Topic, sub.Qos, sub.Handler)
	token.Wait()

	fmt.Printf("\nSubscribed: %s to:\t%s\n\n", client.MQTTClientID, sub.Topic)
}
func (sub MQTTSubscription) UnSub(client ALSMQTTClient) {

	token := client.Unsubscribe(sub.Topic)
	token.Wait()
	fmt.Printf("\nUnsubscribed: %s from:\t%s\n", client.MQTTClientID, sub.Topic)
}

type MQTTPublication struct {
	Topic    string
	Qos      byte
	Retained bool
	Message  string
	WaitMS   int64
}

func (pub MQTTPublication) Pub(client ALSMQTTClient) bool {

	token := client.Publish(
		pub.Topic,
		pub.Qos,
		pub.Retained,
		pub.Message,
	)

	if pub.WaitMS == 0 {
		return token.Wait()
	} else {
		return token.WaitTimeout(time.Millisecond * time.Duration(pub.WaitMS))
	}
}

func MakeMQTTMessage(mqtt interface{}) (msg string) {

	js, err := json.Marshal(mqtt)
	if err != nil {
		LogErr(err)
	}
	return string(js)
}
