// Package provision implements the guided VM composition wizard.
//
// The wizard collects a VM shape, builds one or more disks and any number of
// NICs against the live cluster inventory, and submits the assembled Request
// to the cluster in a single create call.
//
// Every question goes through a prompt.Console. Confirmation points accept
// only the exact answer "Y"; anything else (including "y" or an empty line)
// repeats the step. Loops are unbounded; they end when the console reports
// prompt.ErrInputClosed.
//
// Disk rules depend on the bus type:
//
//   - IDE disks are empty CD-ROM drives with no backing container.
//   - SCSI and PCI disks are data disks placed on a storage container with a
//     size in MB.
package provision
