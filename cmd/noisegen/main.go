// noisegen renders continuous ambient noise. The play command streams to the
// default audio device with a live two-axis control mapped to spectral tilt
// and pitch; analyze renders offline and reports the resulting band balance.
package main

func main() {
	execute()
}
