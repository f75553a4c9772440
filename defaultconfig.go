package main

const configFile = `
# NOTE: Pins are in reference to physical pin numbers

# Length of the solid walk phase, and of each half of a blink step
InitialDelayMs = 2000
BlinkDelayMs = 500

# Number of dont-walk blinks in a countdown (can be changed at runtime on CountTopic)
Count = 5

# Commands that arrive while the queue is full are dropped
QueueSize = 64

# Uncomment to turn both lines off before running a command that interrupted a countdown
# SafeInterrupt = true

StateTopic = "crosswalk/state"
CountTopic = "crosswalk/count"

[Walk]
	Pin = 11
	# Uncomment to output signal LOW when active instead of HIGH
	# Invert = true
[DontWalk]
	Pin = 13

[MQTT]
	Broker = "tcp://localhost:1883"
	ClientID = "crosswalk"
	QoS = 1
	# Username = ""
	# Password = ""

# Uncomment to also accept commands over Redis pub/sub
# [Redis]
# 	Addr = "localhost:6379"

[Metrics]
	Listen = ":9120"
`
