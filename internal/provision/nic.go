package provision

import (
	"context"

	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/prompt"
)

// BuildNIC asks for one network interface and an optional static IP.
// It returns inventory.ErrNoNetworks when the cluster has no networks.
func BuildNIC(ctx context.Context, c prompt.Console, inv Inventory) (NicSpec, error) {
	networkID, err := askNetwork(ctx, c, inv)
	if err != nil {
		return NicSpec{}, err
	}

	nic := NicSpec{NetworkID: networkID}
	ip, err := askStaticIP(ctx, c)
	if err != nil {
		return NicSpec{}, err
	}
	if ip != "" {
		nic.RequestsStaticIP = true
		nic.RequestedIPAddress = ip
	}
	return nic, nil
}

func askNetwork(ctx context.Context, c prompt.Console, inv Inventory) (string, error) {
	for {
		networks, err := inv.Networks(ctx)
		if err != nil {
			return "", err
		}
		if len(networks) == 0 {
			return "", inventory.ErrNoNetworks
		}

		byName := inventory.NetworksByName(networks)
		prompt.Println(c, "Select a network from following networks' list")
		prompt.Println(c, divider)
		for _, name := range inventory.NetworkNames(networks) {
			prompt.Println(c, name+":"+displayAddress(byName[name].NetworkAddress))
		}

		name, err := c.Ask(ctx, "Please enter a Network Name for the NIC:")
		if err != nil {
			return "", err
		}
		answer, err := c.Ask(ctx, name+"? [Y/N]:")
		if err != nil {
			return "", err
		}
		if !confirmed(answer) {
			continue
		}

		network, ok, err := inv.NetworkByName(ctx, name)
		if err != nil {
			return "", err
		}
		if !ok {
			prompt.Printf(c, "Network %q is not in the list\n", name)
			continue
		}
		prompt.Println(c, name+" is selected")
		return network.NetworkID, nil
	}
}

// askStaticIP returns the confirmed address, or "" when no static IP is wanted.
func askStaticIP(ctx context.Context, c prompt.Console) (string, error) {
	for {
		answer, err := c.Ask(ctx, "Do you want to request IP address?[Y/N]:")
		if err != nil {
			return "", err
		}
		if !confirmed(answer) {
			return "", nil
		}

		ip, err := c.Ask(ctx, "Please enter request IP address(xxx.xxx.xxx.xxx):")
		if err != nil {
			return "", err
		}
		if err := validateIPv4(ip); err != nil {
			prompt.Println(c, err.Error())
			continue
		}
		answer, err = c.Ask(ctx, "IP Address: "+ip+"\nIs it OK? [Y/N]:")
		if err != nil {
			return "", err
		}
		if confirmed(answer) {
			return ip, nil
		}
	}
}

func displayAddress(addr string) string {
	if addr == "" {
		return "None"
	}
	return addr
}
