package senka

const Version = "v0.3.1"
