package cmd

import (
	"context"
	"encoding"
	"fmt"
	"log/slog"

	"github.com/Alia5/vtouch/apiclient"
	"github.com/Alia5/vtouch/device"
	"github.com/Alia5/vtouch/device/xbox360"
)

const padDeviceType = "xbox360"

// logSink stands in for a VIIPER device and logs every pad state.
type logSink struct{ logger *slog.Logger }

func (l logSink) WriteBinary(v encoding.BinaryMarshaler) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	var st xbox360.InputState
	if err := st.UnmarshalBinary(data); err != nil {
		return err
	}
	l.logger.Info("Pad state", "buttons", fmt.Sprintf("0x%04x", st.Buttons), "lt", st.LT, "rt", st.RT)
	return nil
}

// openSink returns the writer pad states go to and a func tearing it down.
// Without VIIPER the states are only logged.
func openSink(ctx context.Context, v *Viiper, logger *slog.Logger) (device.StateWriter, func(), error) {
	if v == nil {
		logger.Info("Dry run, pad states are logged only")
		return logSink{logger: logger}, func() {}, nil
	}

	c := apiclient.NewWithConfig(v.Addr, &apiclient.Config{
		DialTimeout:  v.Timeout,
		ReadTimeout:  v.Timeout,
		WriteTimeout: v.Timeout,
		Password:     v.Password,
	})
	ping, err := c.PingCtx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ping VIIPER at %s: %w", v.Addr, err)
	}
	logger.Info("Connected to VIIPER", "addr", v.Addr, "server", ping.Server, "version", ping.Version)

	busID, createdBus, err := c.EnsureBus(ctx)
	if err != nil {
		return nil, nil, err
	}
	removeBus := func() {
		if !createdBus {
			return
		}
		if _, err := c.BusRemoveCtx(context.Background(), busID); err != nil {
			logger.Warn("Failed to remove bus", "bus", busID, "error", err)
		}
	}

	stream, dev, err := c.AddDeviceAndConnect(ctx, busID, padDeviceType)
	if err != nil {
		if dev != nil {
			_, _ = c.DeviceRemoveCtx(context.Background(), busID, dev.DevId)
		}
		removeBus()
		return nil, nil, fmt.Errorf("add %s device: %w", padDeviceType, err)
	}
	logger.Info("Virtual pad attached", "bus", busID, "device", dev.DevId, "vid", dev.Vid, "pid", dev.Pid)

	closeFn := func() {
		_ = stream.Close()
		if _, err := c.DeviceRemoveCtx(context.Background(), busID, dev.DevId); err != nil {
			logger.Warn("Failed to remove device", "bus", busID, "device", dev.DevId, "error", err)
		}
		removeBus()
	}
	return stream, closeFn, nil
}
